package errors

import (
	"fmt"
	"math"
	"strings"
	"testing"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name     string
		op       string
		kind     string
		err      error
		wantMsg  string
		hasStack bool
	}{
		{
			name:     "with original error",
			op:       "LearnOne",
			kind:     "invalid input",
			err:      fmt.Errorf("test error"),
			wantMsg:  "river: LearnOne: invalid input: test error",
			hasStack: true,
		},
		{
			name:     "without original error",
			op:       "PredictOne",
			kind:     "no observations",
			err:      nil,
			wantMsg:  "river: PredictOne: no observations",
			hasStack: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)

			// 基本的なエラーメッセージの確認
			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			// スタックトレースの存在確認
			if tt.hasStack {
				formatted := fmt.Sprintf("%+v", err)
				if !strings.Contains(formatted, "errors_test.go") {
					t.Error("Expected stack trace to contain test file name")
				}
			}

			// ModelError型にキャスト可能か確認
			var modelErr *ModelError
			if !As(err, &modelErr) {
				t.Error("Error should be castable to *ModelError")
			}
		})
	}
}

func TestNewConfigurationError(t *testing.T) {
	err := NewConfigurationError("NewPipeline", "stage 1 (StandardScaler) follows the terminal stage")

	// 基本的なエラーメッセージの確認
	want := "river: NewPipeline: invalid configuration: stage 1 (StandardScaler) follows the terminal stage"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	// ConfigurationError型にキャスト可能か確認
	var confErr *ConfigurationError
	if !As(err, &confErr) {
		t.Error("Error should be castable to *ConfigurationError")
	}
	if confErr.Op != "NewPipeline" {
		t.Errorf("Op = %v, want NewPipeline", confErr.Op)
	}
}

func TestNewCapabilityError(t *testing.T) {
	err := NewCapabilityError("StandardScaler", "Predictor")

	want := `river: stage "StandardScaler" does not implement the Predictor capability`
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var capErr *CapabilityError
	if !As(err, &capErr) {
		t.Error("Error should be castable to *CapabilityError")
	}
}

func TestNewInputShapeError(t *testing.T) {
	tests := []struct {
		name    string
		stage   string
		feature string
		reason  string
		wantMsg string
	}{
		{
			name:    "missing feature",
			stage:   "Agg",
			feature: "store",
			reason:  "missing group-by field",
			wantMsg: `river: Agg: bad input for feature "store": missing group-by field`,
		},
		{
			name:    "no feature name",
			stage:   "StandardScaler",
			feature: "",
			reason:  "record is empty",
			wantMsg: "river: StandardScaler: bad input: record is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewInputShapeError(tt.stage, tt.feature, tt.reason)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			var shapeErr *InputShapeError
			if !As(err, &shapeErr) {
				t.Error("Error should be castable to *InputShapeError")
			}
		})
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("LinearRegression", "PredictOne")

	// 基本的なエラーメッセージの確認
	want := "river: LinearRegression: no observations seen yet. Feed at least one sample before calling PredictOne()"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	// NotFittedError型にキャスト可能か確認
	var notFittedErr *NotFittedError
	if !As(err, &notFittedErr) {
		t.Error("Error should be castable to *NotFittedError")
	}
}

func TestNewNumericalInstabilityWarning(t *testing.T) {
	warn := NewNumericalInstabilityWarning("gradient_update", []float64{math.NaN()}, 42)

	if !strings.Contains(warn.Error(), "gradient_update") {
		t.Errorf("Error() = %v, want it to mention the operation", warn.Error())
	}
	if !strings.Contains(warn.Error(), "sample 42") {
		t.Errorf("Error() = %v, want it to mention the sample number", warn.Error())
	}

	var numWarn *NumericalInstabilityWarning
	if !As(warn, &numWarn) {
		t.Error("Warning should be castable to *NumericalInstabilityWarning")
	}
}

func TestCheckScalar(t *testing.T) {
	if err := CheckScalar("prediction", 1.5, 1); err != nil {
		t.Errorf("CheckScalar() on a finite value = %v, want nil", err)
	}
	if err := CheckScalar("prediction", math.Inf(1), 1); err == nil {
		t.Error("CheckScalar() on +Inf should return an error")
	}
}

func TestCheckWeights(t *testing.T) {
	ok := map[string]float64{"x": 0.5, "y": -2.0}
	if err := CheckWeights("gradient_update", ok, 3); err != nil {
		t.Errorf("CheckWeights() on finite weights = %v, want nil", err)
	}

	bad := map[string]float64{"x": 0.5, "y": math.NaN()}
	err := CheckWeights("gradient_update", bad, 3)
	if err == nil {
		t.Fatal("CheckWeights() on NaN weights should return an error")
	}
	var numWarn *NumericalInstabilityWarning
	if !As(err, &numWarn) {
		t.Error("Error should be castable to *NumericalInstabilityWarning")
	}
}

func TestWrapAndIs(t *testing.T) {
	// 元のエラー
	baseErr := ErrNotImplemented

	// ラップ
	wrapped := Wrap(baseErr, "in LinearRegression.PredictOne")

	// Is関数でチェック
	if !Is(wrapped, ErrNotImplemented) {
		t.Error("Expected Is(wrapped, ErrNotImplemented) to be true")
	}

	// エラーメッセージの確認
	if !strings.Contains(wrapped.Error(), "in LinearRegression.PredictOne") {
		t.Error("Expected wrapped error to contain wrapping message")
	}
}

func TestWrapf(t *testing.T) {
	// 元のエラー
	baseErr := ErrEmptyPipeline

	// フォーマット付きラップ
	wrapped := Wrapf(baseErr, "in %s: %d stages", "Chain", 0)

	// Is関数でチェック
	if !Is(wrapped, ErrEmptyPipeline) {
		t.Error("Expected Is(wrapped, ErrEmptyPipeline) to be true")
	}

	// エラーメッセージの確認
	expectedMsg := "in Chain: 0 stages"
	if !strings.Contains(wrapped.Error(), expectedMsg) {
		t.Errorf("Expected wrapped error to contain %q", expectedMsg)
	}
}

func TestErrorChaining(t *testing.T) {
	// エラーチェーンの作成
	err1 := fmt.Errorf("base error")
	err2 := Wrap(err1, "wrapped once")
	err3 := NewModelError("Operation", "failed", err2)

	// チェーン全体を確認
	if !strings.Contains(err3.Error(), "base error") {
		t.Error("Expected error chain to contain base error")
	}

	// スタックトレースの確認（詳細表示）
	formatted := fmt.Sprintf("%+v", err3)
	if !strings.Contains(formatted, "errors_test.go") {
		t.Error("Expected detailed error to contain stack trace")
	}
}
