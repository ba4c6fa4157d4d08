// Package errors はプロジェクト全体のエラーハンドリングと警告システムを提供します。
// オンライン学習パイプラインの構成ミス・能力エラー・入力エラーを構造化して表現します。
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	グローバル警告ハンドリング
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// デフォルトのハンドラは標準エラー出力にログを出す
		log.Printf("river-Warning: %v\n", w)
	}
	// zerologロガー（循環importを避けるため遅延初期化）
	zerologWarnFunc func(warning error)
)

// SetWarningHandler はライブラリ全体の警告ハンドラを設定します。
// NumericalInstabilityWarningなどの警告の処理方法を制御できます。
//
// 例:
//
//	errors.SetWarningHandler(func(w error) {
//	    // 警告を無視する
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc はzerolog警告関数を設定します（循環importを避けるため）。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn は警告を発生させます。
// zerologが利用可能な場合は構造化ログとして出力し、そうでなければ従来のハンドラを使用します。
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	パイプライン構成エラー
//
// ===========================================================================

// ConfigurationError はパイプラインの構成が不正な場合のエラーです。
// 終端以外に非Transformerステージを置いた場合や、Unionのブランチ間で
// 出力キーが衝突した場合など、構築時または初回実行時に検出され、リトライ不可です。
type ConfigurationError struct {
	Op     string // 構成操作（例: "NewPipeline", "TransformerUnion.TransformOne"）
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("river: %s: invalid configuration: %s", e.Op, e.Reason)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ConfigurationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("reason", e.Reason).
		Str("type", "ConfigurationError")
}

// NewConfigurationError は新しいConfigurationErrorを作成し、スタックトレースを付与します。
func NewConfigurationError(op, reason string) error {
	err := &ConfigurationError{Op: op, Reason: reason}
	return errors.WithStack(err)
}

// NewConfigurationErrorf はフォーマット済みのConfigurationErrorを作成します。
func NewConfigurationErrorf(op, format string, args ...interface{}) error {
	return NewConfigurationError(op, fmt.Sprintf(format, args...))
}

// CapabilityError はステージが対応していない操作を呼び出した場合のエラーです。
// 例えば、Predictorでない終端ステージに対してPredictOneを呼んだ場合など。
type CapabilityError struct {
	Stage      string // ステージ名
	Capability string // 要求された能力（"Transformer", "Predictor", "Learner"）
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("river: stage %q does not implement the %s capability", e.Stage, e.Capability)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *CapabilityError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("stage", e.Stage).
		Str("capability", e.Capability).
		Str("type", "CapabilityError")
}

// NewCapabilityError は新しいCapabilityErrorを作成し、スタックトレースを付与します。
func NewCapabilityError(stage, capability string) error {
	err := &CapabilityError{Stage: stage, Capability: capability}
	return errors.WithStack(err)
}

// InputShapeError はレコードが期待されたキーを欠いている、あるいは数値が必要な
// 位置に数値以外の値が入っている場合のエラーです。呼び出し元に伝播され、
// 自動リトライされません（観測をスキップするかは呼び出し元が決めます）。
type InputShapeError struct {
	Stage   string // エラーが発生したステージ名
	Feature string // 問題のある特徴量名
	Reason  string
}

func (e *InputShapeError) Error() string {
	if e.Feature != "" {
		return fmt.Sprintf("river: %s: bad input for feature %q: %s", e.Stage, e.Feature, e.Reason)
	}
	return fmt.Sprintf("river: %s: bad input: %s", e.Stage, e.Reason)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *InputShapeError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("stage", e.Stage).
		Str("feature", e.Feature).
		Str("reason", e.Reason).
		Str("type", "InputShapeError")
}

// NewInputShapeError は新しいInputShapeErrorを作成し、スタックトレースを付与します。
func NewInputShapeError(stage, feature, reason string) error {
	err := &InputShapeError{Stage: stage, Feature: feature, Reason: reason}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	モデル状態エラー
//
// ===========================================================================

// NotFittedError はモデルが一件も観測していない状態で内部統計を要求した場合のエラーです。
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("river: %s: no observations seen yet. Feed at least one sample before calling %s()", e.ModelName, e.Method)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError は新しいNotFittedErrorを作成し、スタックトレースを付与します。
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// ValueError は引数の値が不適切または不正な場合に発生するエラーです。
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("river: %s: %s", e.Op, e.Message)
}

// NewValueError は新しいValueErrorを作成し、スタックトレースを付与します。
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ModelError は学習モデルに関する一般的なエラーです。
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("river: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("river: %s: %s", e.Op, e.Kind)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// NewModelError は新しいModelErrorを作成し、スタックトレースを付与します。
func NewModelError(op, kind string, err error) error {
	modelErr := &ModelError{Op: op, Kind: kind, Err: err}
	return errors.WithStack(modelErr)
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// Newf は新しいフォーマット済みエラーを作成します。
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	オンライン学習特有の警告型
//
// ===========================================================================

// NumericalInstabilityWarning は逐次更新が数値的に不安定になった場合の警告です。
// NaN、Inf、オーバーフローなどを検出します。
type NumericalInstabilityWarning struct {
	Operation string    // 発生した操作（例: "gradient_update"）
	Values    []float64 // 問題のある値
	Sample    int64     // 発生した観測番号
}

func (w *NumericalInstabilityWarning) Error() string {
	valStr := ""
	for i, v := range w.Values {
		if i > 0 {
			valStr += ", "
		}
		if i >= 5 {
			valStr += "..."
			break
		}
		valStr += fmt.Sprintf("%.6g", v)
	}
	return fmt.Sprintf("river: numerical instability detected in %s at sample %d. Values: [%s]",
		w.Operation, w.Sample, valStr)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *NumericalInstabilityWarning) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", w.Operation).
		Floats64("values", w.Values).
		Int64("sample", w.Sample).
		Str("type", "NumericalInstabilityWarning")
}

// NewNumericalInstabilityWarning は新しいNumericalInstabilityWarningを作成します。
func NewNumericalInstabilityWarning(operation string, values []float64, sample int64) *NumericalInstabilityWarning {
	return &NumericalInstabilityWarning{Operation: operation, Values: values, Sample: sample}
}

// ===========================================================================
//
//	共通エラー変数
//
// ===========================================================================

var (
	// ErrNotImplemented は機能が未実装の場合のエラーです。
	ErrNotImplemented = New("not implemented")

	// ErrEmptyData は空のデータが渡された場合のエラーです。
	ErrEmptyData = New("empty data")

	// ErrEmptyPipeline はステージを一つも持たないパイプラインのエラーです。
	ErrEmptyPipeline = New("empty pipeline")
)
