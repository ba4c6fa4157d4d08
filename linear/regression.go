// Package linear は名前付き特徴量に対する逐次線形モデルを提供します。
package linear

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/Bantey17/river/core/feature"
	"github.com/Bantey17/river/core/model"
	"github.com/Bantey17/river/pkg/errors"
)

const (
	scheduleConstant   = "constant"
	scheduleInvScaling = "invscaling"
)

// LinearRegression は確率的勾配降下法による逐次線形回帰モデル。
// 重みは特徴量名をキーとするマップで保持し、未知の特徴量は最初の
// 勾配ステップで重み0から学習が始まる。
//
// PredictOneは純粋な射影で、パラメータはLearnOne（教師あり更新チャネル）
// でのみ前進する。
type LinearRegression struct {
	model.BaseEstimator

	weights   map[string]float64
	intercept float64

	eta0     float64
	schedule string
	power    float64
	l2       float64
	clipNorm float64
}

// NewLinearRegression は新しい逐次線形回帰モデルを作成する
func NewLinearRegression(opts ...Option) *LinearRegression {
	lr := &LinearRegression{
		weights:  make(map[string]float64),
		eta0:     0.01,
		schedule: scheduleConstant,
		power:    0.25,
		clipNorm: 1e3,
	}
	for _, opt := range opts {
		opt(lr)
	}
	return lr
}

// PredictOne はレコードの数値特徴量と重みの内積に切片を加えた予測を返す。
// 重みを持たない特徴量の寄与は0。内部状態は変更しない。
func (lr *LinearRegression) PredictOne(x feature.Record) (float64, error) {
	pred := lr.intercept
	for k, v := range x {
		val, ok := v.Float()
		if !ok {
			continue
		}
		pred += lr.weights[k] * val
	}
	if err := errors.CheckScalar("prediction", pred, lr.NSeen()); err != nil {
		return 0, err
	}
	return pred, nil
}

// LearnOne は二乗誤差の勾配で重みと切片を一度だけ更新する。
// 更新は一時バッファ上で計算・検証してから確定するため、数値不安定を
// 検出した場合は状態を変更せずにエラーを返す。
func (lr *LinearRegression) LearnOne(x feature.Record, y float64) error {
	yPred, err := lr.PredictOne(x)
	if err != nil {
		return err
	}

	// 損失 ½(ŷ−y)² の勾配
	g := yPred - y
	if err := errors.CheckScalar("gradient_update", g, lr.NSeen()); err != nil {
		return err
	}

	eta := lr.learningRate()

	// 勾配ベクトルを組み立ててからクリップする
	keys := make([]string, 0, len(x))
	grads := make([]float64, 0, len(x))
	for _, k := range x.Keys() {
		val, ok := x.Float(k)
		if !ok {
			continue
		}
		keys = append(keys, k)
		grads = append(grads, g*val+lr.l2*lr.weights[k])
	}
	grads = errors.ClipGradient(grads, lr.clipNorm)

	updated := make(map[string]float64, len(keys))
	for i, k := range keys {
		updated[k] = lr.weights[k] - eta*grads[i]
	}
	if err := errors.CheckWeights("gradient_update", updated, lr.NSeen()); err != nil {
		errors.Warn(errors.NewNumericalInstabilityWarning("gradient_update", grads, lr.NSeen()))
		return err
	}

	for k, w := range updated {
		lr.weights[k] = w
	}
	lr.intercept -= eta * g
	lr.MarkSeen()
	return nil
}

// learningRate は現在の観測数に応じたステップ幅を返す
func (lr *LinearRegression) learningRate() float64 {
	if lr.schedule == scheduleInvScaling {
		return lr.eta0 / math.Pow(float64(lr.NSeen()+1), lr.power)
	}
	return lr.eta0
}

// FitBatch は正規方程式 w = (XᵀX)⁻¹Xᵀy を解いて重みを初期化する。
// オンライン学習を既知データから温間開始するための初期化であり、
// 以降の更新は通常どおりLearnOneで行う。
//
// パラメータ:
//   - X: 初期化データ (n_samples × n_features の行列)
//   - y: 目的変数 (n_samples × 1 の行列)
//   - featureNames: Xの列に対応する特徴量名
func (lr *LinearRegression) FitBatch(X, y mat.Matrix, featureNames []string) error {
	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return errors.NewModelError("LinearRegression.FitBatch", "empty data", errors.ErrEmptyData)
	}
	if len(featureNames) != c {
		return errors.NewValueError("LinearRegression.FitBatch",
			fmt.Sprintf("expected %d feature names, got %d", c, len(featureNames)))
	}
	if ry != r {
		return errors.NewValueError("LinearRegression.FitBatch", "X and y row counts differ")
	}
	if cy != 1 {
		return errors.NewValueError("LinearRegression.FitBatch", "y must be a column vector")
	}

	// 切片項のために X に 1 の列を追加
	XWithIntercept := mat.NewDense(r, c+1, nil)
	for i := 0; i < r; i++ {
		XWithIntercept.Set(i, 0, 1.0)
		for j := 0; j < c; j++ {
			XWithIntercept.Set(i, j+1, X.At(i, j))
		}
	}

	var XT mat.Dense
	XT.CloneFrom(XWithIntercept.T())

	var XTX mat.Dense
	XTX.Mul(&XT, XWithIntercept)

	var XTXInv mat.Dense
	if err := XTXInv.Inverse(&XTX); err != nil {
		return errors.NewModelError("LinearRegression.FitBatch", "singular matrix", err)
	}

	yVec := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		yVec.SetVec(i, y.At(i, 0))
	}

	var XTy mat.VecDense
	XTy.MulVec(&XT, yVec)

	solved := mat.NewVecDense(c+1, nil)
	solved.MulVec(&XTXInv, &XTy)

	lr.intercept = solved.AtVec(0)
	for j, name := range featureNames {
		lr.weights[name] = solved.AtVec(j + 1)
	}
	for i := 0; i < r; i++ {
		lr.MarkSeen()
	}
	return nil
}

// Weights は学習された重みのコピーを返す
func (lr *LinearRegression) Weights() map[string]float64 {
	out := make(map[string]float64, len(lr.weights))
	for k, v := range lr.weights {
		out[k] = v
	}
	return out
}

// Intercept は学習された切片を返す
func (lr *LinearRegression) Intercept() float64 {
	return lr.intercept
}

// String はモデルの文字列表現を返す
func (lr *LinearRegression) String() string {
	keys := make([]string, 0, len(lr.weights))
	for k := range lr.weights {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("LinearRegression(eta0=%g, schedule=%s, n_features=%d)",
		lr.eta0, lr.schedule, len(keys))
}
