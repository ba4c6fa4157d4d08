// Package cluster はレコードを一件ずつ取り込むオンラインクラスタリングを
// 提供します。
package cluster

import (
	"fmt"
	"math"

	"github.com/Bantey17/river/core/feature"
	"github.com/Bantey17/river/core/model"
	"github.com/Bantey17/river/pkg/errors"
)

// KMeans は逐次更新のK-meansクラスタリング。各観測を最も近い中心に
// 割り当て、その中心を割り当て数に応じた学習率で観測の方へ動かす
// (MacQueen更新)。中心は最初のk件の観測で初期化される。
//
// 変換と予測の両方の能力を持つステージ: TransformOneは各中心までの
// 距離を特徴量として付加し、PredictOneは最近傍クラスタの番号を返す。
// 中心はObserveOne（教師なし更新チャネル）でのみ動く。
type KMeans struct {
	model.BaseEstimator

	k       int
	centers []map[string]float64
	counts  []int64
}

// Option はKMeansの設定オプション
type Option func(*KMeans)

// WithK はクラスタ数を設定する (デフォルト: 8)
func WithK(k int) Option {
	return func(km *KMeans) { km.k = k }
}

// NewKMeans は新しいオンラインK-meansステージを作成する
func NewKMeans(opts ...Option) *KMeans {
	km := &KMeans{k: 8}
	for _, opt := range opts {
		opt(km)
	}
	if km.k < 1 {
		km.k = 1
	}
	return km
}

// numericFeatures はレコードの数値特徴量を抽出する
func numericFeatures(x feature.Record) (map[string]float64, error) {
	out := make(map[string]float64)
	for _, k := range x.Keys() {
		if v, ok := x.Float(k); ok {
			out[k] = v
		}
	}
	if len(out) == 0 {
		return nil, errors.NewInputShapeError("KMeans", "", "record has no numeric features")
	}
	return out, nil
}

// distance は点と中心のユークリッド距離。片方にしかない特徴量は
// もう片方を0として扱う。
func distance(p, center map[string]float64) float64 {
	var sum float64
	for k, v := range p {
		d := v - center[k]
		sum += d * d
	}
	for k, v := range center {
		if _, ok := p[k]; !ok {
			sum += v * v
		}
	}
	return math.Sqrt(sum)
}

// nearest は最も近い中心の番号と距離を返す
func (km *KMeans) nearest(p map[string]float64) (int, float64) {
	best, bestDist := 0, math.Inf(1)
	for i, c := range km.centers {
		if d := distance(p, c); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, bestDist
}

// ObserveOne は観測を最近傍の中心に割り当て、中心を観測の方へ動かす。
// 中心がk個揃うまでは観測そのものが新しい中心になる。
func (km *KMeans) ObserveOne(x feature.Record) error {
	p, err := numericFeatures(x)
	if err != nil {
		return err
	}

	if len(km.centers) < km.k {
		km.centers = append(km.centers, p)
		km.counts = append(km.counts, 1)
		km.MarkSeen()
		return nil
	}

	i, _ := km.nearest(p)
	km.counts[i]++
	lr := 1.0 / float64(km.counts[i])
	c := km.centers[i]
	for k, v := range p {
		c[k] += lr * (v - c[k])
	}
	for k := range c {
		if _, ok := p[k]; !ok {
			c[k] += lr * (0 - c[k])
		}
	}
	km.MarkSeen()
	return nil
}

// TransformOne は各クラスタ中心までの距離を特徴量として付加する。
// 未初期化の中心までの距離は0として出力される。
func (km *KMeans) TransformOne(x feature.Record) (feature.Record, error) {
	p, err := numericFeatures(x)
	if err != nil {
		return nil, err
	}

	out := x.Clone()
	for i := 0; i < km.k; i++ {
		d := 0.0
		if i < len(km.centers) {
			d = distance(p, km.centers[i])
		}
		out.Set(fmt.Sprintf("cluster_%d_dist", i), feature.Num(d))
	}
	return out, nil
}

// PredictOne は最近傍クラスタの番号を返す
func (km *KMeans) PredictOne(x feature.Record) (float64, error) {
	if len(km.centers) == 0 {
		return 0, errors.NewNotFittedError("KMeans", "PredictOne")
	}
	p, err := numericFeatures(x)
	if err != nil {
		return 0, err
	}
	i, _ := km.nearest(p)
	return float64(i), nil
}

// Centers は現在のクラスタ中心のコピーを返す
func (km *KMeans) Centers() []map[string]float64 {
	out := make([]map[string]float64, len(km.centers))
	for i, c := range km.centers {
		cp := make(map[string]float64, len(c))
		for k, v := range c {
			cp[k] = v
		}
		out[i] = cp
	}
	return out
}

// String はステージの文字列表現を返す
func (km *KMeans) String() string {
	return fmt.Sprintf("KMeans(k=%d, initialized=%d)", km.k, len(km.centers))
}
