// Package preprocessing は特徴量の逐次スケーリング変換を提供します。
// 各スケーラーは観測を一件ずつ取り込み、特徴量ごとの実行統計を更新します。
package preprocessing

import (
	"fmt"
	"math"

	"github.com/Bantey17/river/core/feature"
	"github.com/Bantey17/river/core/model"
	"github.com/Bantey17/river/pkg/errors"
	"github.com/Bantey17/river/stats"
)

// StandardScaler はデータを平均0、分散1に逐次変換するスケーラー。
// 特徴量ごとにWelford法で実行平均・実行分散を保持する。
//
// TransformOneは現在の統計による純粋な射影で、内部状態を変更しない。
// 統計はObserveOne（教師なし更新チャネル）でのみ前進する。
type StandardScaler struct {
	model.BaseEstimator

	// WithMean は平均を引くかどうか (デフォルト: true)
	WithMean bool

	// WithStd は標準偏差で割るかどうか (デフォルト: true)
	WithStd bool

	vars map[string]*stats.Var
}

// NewStandardScaler は新しいStandardScalerを作成する
//
// パラメータ:
//   - withMean: 平均を引くかどうか
//   - withStd: 標準偏差で割るかどうか
func NewStandardScaler(withMean, withStd bool) *StandardScaler {
	return &StandardScaler{
		WithMean: withMean,
		WithStd:  withStd,
		vars:     make(map[string]*stats.Var),
	}
}

// NewStandardScalerDefault はデフォルト設定でStandardScalerを作成する
func NewStandardScalerDefault() *StandardScaler {
	return NewStandardScaler(true, true)
}

// ObserveOne は数値特徴量ごとの実行統計を更新する。
// 数値以外の特徴量は対象外。レコードに数値特徴量が一つもない場合は
// InputShapeErrorを返し、状態は変更しない。
func (s *StandardScaler) ObserveOne(x feature.Record) error {
	numeric := 0
	for _, k := range x.Keys() {
		if _, ok := x.Float(k); ok {
			numeric++
		}
	}
	if numeric == 0 {
		return errors.NewInputShapeError("StandardScaler", "", "record has no numeric features")
	}

	for _, k := range x.Keys() {
		v, ok := x.Float(k)
		if !ok {
			continue
		}
		st, exists := s.vars[k]
		if !exists {
			st = stats.NewPopulationVar()
			s.vars[k] = st
		}
		st.Update(v)
	}
	s.MarkSeen()
	return nil
}

// TransformOne は現在の統計を使って数値特徴量を標準化する。
// 数値以外の特徴量はそのまま通過する。分散が0の特徴量は0に写される。
func (s *StandardScaler) TransformOne(x feature.Record) (feature.Record, error) {
	out := x.Clone()
	for _, k := range x.Keys() {
		v, ok := x.Float(k)
		if !ok {
			continue
		}
		st, exists := s.vars[k]
		if !exists {
			// まだ観測していない特徴量は統計の恒等値で写す
			out.Set(k, feature.Num(0))
			continue
		}
		centered := v
		if s.WithMean {
			centered -= st.Mean()
		}
		if s.WithStd {
			centered = errors.SafeDivide(centered, math.Sqrt(st.Get()))
		}
		out.Set(k, feature.Num(centered))
	}
	return out, nil
}

// Mean は特徴量の実行平均を返す。未観測の特徴量は0を返す。
func (s *StandardScaler) Mean(key string) float64 {
	if st, ok := s.vars[key]; ok {
		return st.Mean()
	}
	return 0
}

// Count は特徴量に取り込んだ観測数を返す。
func (s *StandardScaler) Count(key string) int64 {
	if st, ok := s.vars[key]; ok {
		return st.N()
	}
	return 0
}

// String はスケーラーの文字列表現を返す
func (s *StandardScaler) String() string {
	return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t, n_features=%d)",
		s.WithMean, s.WithStd, len(s.vars))
}

// MinMaxScaler はデータを[0,1]の範囲に逐次スケーリングするスケーラー。
// 特徴量ごとに観測済みの最小値・最大値を保持する。
type MinMaxScaler struct {
	model.BaseEstimator

	mins map[string]*stats.Min
	maxs map[string]*stats.Max
}

// NewMinMaxScaler は新しいMinMaxScalerを作成する
func NewMinMaxScaler() *MinMaxScaler {
	return &MinMaxScaler{
		mins: make(map[string]*stats.Min),
		maxs: make(map[string]*stats.Max),
	}
}

// ObserveOne は数値特徴量ごとの最小値・最大値を更新する。
func (m *MinMaxScaler) ObserveOne(x feature.Record) error {
	numeric := 0
	for _, k := range x.Keys() {
		if _, ok := x.Float(k); ok {
			numeric++
		}
	}
	if numeric == 0 {
		return errors.NewInputShapeError("MinMaxScaler", "", "record has no numeric features")
	}

	for _, k := range x.Keys() {
		v, ok := x.Float(k)
		if !ok {
			continue
		}
		mn, exists := m.mins[k]
		if !exists {
			mn = stats.NewMin()
			m.mins[k] = mn
			mx := stats.NewMax()
			m.maxs[k] = mx
		}
		mn.Update(v)
		m.maxs[k].Update(v)
	}
	m.MarkSeen()
	return nil
}

// TransformOne は現在の最小値・最大値で数値特徴量を[0,1]に写す。
// 定数特徴量（min == max）は0に写される。
func (m *MinMaxScaler) TransformOne(x feature.Record) (feature.Record, error) {
	out := x.Clone()
	for _, k := range x.Keys() {
		v, ok := x.Float(k)
		if !ok {
			continue
		}
		mn, exists := m.mins[k]
		if !exists {
			out.Set(k, feature.Num(0))
			continue
		}
		lo := mn.Get()
		hi := m.maxs[k].Get()
		out.Set(k, feature.Num(errors.SafeDivide(v-lo, hi-lo)))
	}
	return out, nil
}

// String はスケーラーの文字列表現を返す
func (m *MinMaxScaler) String() string {
	return fmt.Sprintf("MinMaxScaler(n_features=%d)", len(m.mins))
}
