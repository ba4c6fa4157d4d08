package drift

import "math"

// ADWIN はアダプティブウィンドウによるドリフト検出器。
// 観測値の系列を可変長ウィンドウに保持し、ウィンドウを二分したとき
// 両側の平均差がホフディング境界を超えた場合に古い側を捨てて
// ドリフトを報告する。
//
// A. Bifet, R. Gavalda (2007)
// "Learning from time-changing data with adaptive windowing"
type ADWIN struct {
	delta      float64
	maxBuckets int

	buckets []bucket
	sum     float64
	count   int
}

// bucket は連続する観測のまとまり
type bucket struct {
	sum   float64
	count int
}

// ADWINOption はADWINの設定オプション
type ADWINOption func(*ADWIN)

// WithDelta は信頼度パラメータを設定する。小さいほど検出が敏感になる
// (デフォルト: 0.002)
func WithDelta(delta float64) ADWINOption {
	return func(a *ADWIN) { a.delta = delta }
}

// WithMaxBuckets は保持するバケット数の上限を設定する (デフォルト: 1000)
func WithMaxBuckets(n int) ADWINOption {
	return func(a *ADWIN) { a.maxBuckets = n }
}

// NewADWIN は新しいADWIN検出器を作成する
func NewADWIN(opts ...ADWINOption) *ADWIN {
	a := &ADWIN{delta: 0.002, maxBuckets: 1000}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Update は新しい観測値を取り込み、ドリフトを検出したかどうかを返す。
// 検出時はウィンドウの古い側が捨てられる。
func (a *ADWIN) Update(v float64) bool {
	a.buckets = append(a.buckets, bucket{sum: v, count: 1})
	a.sum += v
	a.count++
	if len(a.buckets) > a.maxBuckets {
		old := a.buckets[0]
		a.buckets = a.buckets[1:]
		a.sum -= old.sum
		a.count -= old.count
	}
	return a.detect()
}

// detect は全ての分割点でホフディング検定を行う
func (a *ADWIN) detect() bool {
	if a.count < 5 || len(a.buckets) < 2 {
		return false
	}

	sum0, count0 := 0.0, 0
	for i := 1; i < len(a.buckets); i++ {
		sum0 += a.buckets[i-1].sum
		count0 += a.buckets[i-1].count
		count1 := a.count - count0
		if count1 <= 0 {
			break
		}
		mean0 := sum0 / float64(count0)
		mean1 := (a.sum - sum0) / float64(count1)

		if math.Abs(mean0-mean1) > a.bound(count0, count1) {
			// 古い側を捨てる
			a.buckets = append([]bucket(nil), a.buckets[i:]...)
			a.sum = 0
			a.count = 0
			for _, b := range a.buckets {
				a.sum += b.sum
				a.count += b.count
			}
			return true
		}
	}
	return false
}

// bound はホフディングの不等式による平均差の許容境界
func (a *ADWIN) bound(n0, n1 int) float64 {
	m := 1.0/float64(n0) + 1.0/float64(n1)
	return math.Sqrt(0.5 * m * math.Log(2.0/a.delta))
}

// Mean は現在のウィンドウの平均を返す
func (a *ADWIN) Mean() float64 {
	if a.count == 0 {
		return 0
	}
	return a.sum / float64(a.count)
}

// Width は現在のウィンドウ内の観測数を返す
func (a *ADWIN) Width() int {
	return a.count
}

// Reset は検出器を初期状態に戻す
func (a *ADWIN) Reset() {
	a.buckets = nil
	a.sum = 0
	a.count = 0
}
