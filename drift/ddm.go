// Package drift はオンライン学習中のコンセプトドリフトを検出します。
// 検出器は評価ループから観測ごとの予測結果を受け取り、エラー率の
// 統計的な悪化を警告またはドリフトとして報告します。
package drift

import "math"

// Level は検出器が報告する状態。
type Level int

const (
	// LevelStable はエラー率が基準範囲内であることを示す
	LevelStable Level = iota
	// LevelWarning はエラー率が警告しきい値を超えたことを示す
	LevelWarning
	// LevelDrift はエラー率が制御外しきい値を超えたことを示す
	LevelDrift
)

// String returns the string representation of the level.
func (l Level) String() string {
	switch l {
	case LevelStable:
		return "stable"
	case LevelWarning:
		return "warning"
	case LevelDrift:
		return "drift"
	default:
		return "unknown"
	}
}

// State is one detector report: the level plus the statistics behind it.
type State struct {
	Level     Level
	ErrorRate float64
	Samples   int
}

// DDM は Gama らの Drift Detection Method によるドリフト検出器。
// 予測の正誤系列からエラー率 p とその標準偏差 s を逐次計算し、
// p+s が観測された最小値 p_min+s_min から一定の標準偏差分だけ
// 悪化したときに警告・ドリフトを報告する。
//
// J. Gama, P. Medas, G. Castillo, P. Rodrigues (2004)
// "Learning with Drift Detection"
type DDM struct {
	minSamples   int
	warningLevel float64
	driftLevel   float64

	samples int
	errs    int

	minRate float64
	minStd  float64
}

// Option はDDMの設定オプション
type Option func(*DDM)

// WithMinSamples は検出を始める最小観測数を設定する (デフォルト: 30)
func WithMinSamples(n int) Option {
	return func(d *DDM) { d.minSamples = n }
}

// WithWarningLevel は警告しきい値を標準偏差の倍数で設定する (デフォルト: 2)
func WithWarningLevel(level float64) Option {
	return func(d *DDM) { d.warningLevel = level }
}

// WithDriftLevel はドリフトしきい値を標準偏差の倍数で設定する (デフォルト: 3)
func WithDriftLevel(level float64) Option {
	return func(d *DDM) { d.driftLevel = level }
}

// NewDDM は新しいDDM検出器を作成する
func NewDDM(opts ...Option) *DDM {
	d := &DDM{
		minSamples:   30,
		warningLevel: 2.0,
		driftLevel:   3.0,
		minRate:      math.Inf(1),
		minStd:       math.Inf(1),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Update は一件の予測結果を取り込み、現在の状態を返す。
// ドリフトを報告した時点で内部統計はリセットされ、次の観測から
// 新しい基準で検出が始まる。
func (d *DDM) Update(correct bool) State {
	d.samples++
	if !correct {
		d.errs++
	}
	if d.samples < d.minSamples {
		return State{Level: LevelStable, Samples: d.samples}
	}

	rate := float64(d.errs) / float64(d.samples)
	std := math.Sqrt(rate * (1 - rate) / float64(d.samples))

	if rate+std < d.minRate+d.minStd {
		d.minRate = rate
		d.minStd = std
	}

	st := State{Level: LevelStable, ErrorRate: rate, Samples: d.samples}
	switch {
	case rate+std > d.minRate+d.driftLevel*d.minStd:
		st.Level = LevelDrift
		d.Reset()
	case rate+std > d.minRate+d.warningLevel*d.minStd:
		st.Level = LevelWarning
	}
	return st
}

// Reset は検出器を初期状態に戻す
func (d *DDM) Reset() {
	d.samples = 0
	d.errs = 0
	d.minRate = math.Inf(1)
	d.minStd = math.Inf(1)
}
