package errors

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		kind    string
		err     error
		wantMsg string
	}{
		{
			name:    "with original error",
			op:      "GradientDescent.Fit",
			kind:    "invalid input",
			err:     fmt.Errorf("test error"),
			wantMsg: "linreg: GradientDescent.Fit: invalid input: test error",
		},
		{
			name:    "without original error",
			op:      "Predictor.Predict",
			kind:    "not fitted",
			err:     nil,
			wantMsg: "linreg: Predictor.Predict: not fitted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			// スタックトレースの存在確認
			formatted := fmt.Sprintf("%+v", err)
			if !strings.Contains(formatted, "errors_test.go") {
				t.Error("Expected stack trace to contain test file name")
			}

			var modelErr *ModelError
			if !As(err, &modelErr) {
				t.Error("Error should be castable to *ModelError")
			}
		})
	}
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("GradientDescent.Fit", 1, 3, 1)

	want := "linreg: GradientDescent.Fit: dimension mismatch on axis 1 (features). Expected 1, got 3"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var dimErr *DimensionError
	if !As(err, &dimErr) {
		t.Error("Error should be castable to *DimensionError")
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("GradientDescent", "Predict")

	want := "linreg: GradientDescent: this model is not fitted yet. Call Fit() before using Predict()"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var notFittedErr *NotFittedError
	if !As(err, &notFittedErr) {
		t.Error("Error should be castable to *NotFittedError")
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("learning_rate", "must be positive", -0.5)

	want := "linreg: validation failed for parameter 'learning_rate': must be positive (got: -0.5)"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var valErr *ValidationError
	if !As(err, &valErr) {
		t.Fatal("Error should be castable to *ValidationError")
	}
	if valErr.ParamName != "learning_rate" {
		t.Errorf("ParamName = %v, want learning_rate", valErr.ParamName)
	}
}

func TestNewDataError(t *testing.T) {
	tests := []struct {
		name    string
		line    int
		kind    error
		wantMsg string
	}{
		{
			name:    "row error",
			line:    3,
			kind:    ErrInvalidTrainingData,
			wantMsg: "linreg: data.csv:3: expected 2 fields, got 1",
		},
		{
			name:    "file error",
			line:    0,
			kind:    ErrMalformedModel,
			wantMsg: "linreg: data.csv: expected 2 fields, got 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDataError("data.csv", tt.line, "expected 2 fields, got 1", tt.kind)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}
			if !Is(err, tt.kind) {
				t.Errorf("Expected Is(err, %v) to be true", tt.kind)
			}

			var dataErr *DataError
			if !As(err, &dataErr) {
				t.Fatal("Error should be castable to *DataError")
			}
			if dataErr.Line != tt.line {
				t.Errorf("Line = %d, want %d", dataErr.Line, tt.line)
			}
		})
	}
}

func TestMarkCarriesBothClasses(t *testing.T) {
	// EmptySample は InvalidTrainingData としても扱われる
	err := Mark(Wrap(ErrEmptySample, "no data rows"), ErrInvalidTrainingData)

	if !Is(err, ErrEmptySample) {
		t.Error("Expected Is(err, ErrEmptySample) to be true")
	}
	if !Is(err, ErrInvalidTrainingData) {
		t.Error("Expected Is(err, ErrInvalidTrainingData) to be true")
	}
	if Is(err, ErrDivergedGradient) {
		t.Error("Expected Is(err, ErrDivergedGradient) to be false")
	}

	wrapped := Wrapf(err, "loading %s", "data.csv")
	if !Is(wrapped, ErrInvalidTrainingData) {
		t.Error("Mark should survive further wrapping")
	}
}

func TestDivergedGradientKeepsInstabilityDetails(t *testing.T) {
	err := Mark(NewNumericalInstabilityError("gradient", []float64{math.NaN(), 0.5}, 7), ErrDivergedGradient)

	if !Is(err, ErrDivergedGradient) {
		t.Error("Expected Is(err, ErrDivergedGradient) to be true")
	}

	var numErr *NumericalInstabilityError
	if !As(err, &numErr) {
		t.Fatal("Error should be castable to *NumericalInstabilityError")
	}
	if numErr.Iteration != 7 {
		t.Errorf("Iteration = %d, want 7", numErr.Iteration)
	}
	if !strings.Contains(err.Error(), "NaN, 0.5") {
		t.Errorf("Error() = %v, want values listed", err.Error())
	}
}

func TestNewConvergenceWarning(t *testing.T) {
	warn := NewConvergenceWarning("GradientDescent", 1000, "gradient above tolerance")

	want := "GradientDescent failed to converge after 1000 iterations: gradient above tolerance"
	if warn.Error() != want {
		t.Errorf("Error() = %v, want %v", warn.Error(), want)
	}

	var convWarn *ConvergenceWarning
	if !As(warn, &convWarn) {
		t.Error("Warning should be castable to *ConvergenceWarning")
	}
}

func TestNewUndefinedMetricWarning(t *testing.T) {
	warn := NewUndefinedMetricWarning("precision", "zero price in sample", math.NaN())

	if !strings.Contains(warn.Error(), "'precision' is ill-defined") {
		t.Errorf("Error() = %v", warn.Error())
	}
	if !strings.Contains(warn.Error(), "zero price in sample") {
		t.Errorf("Error() = %v", warn.Error())
	}
}

func TestWarnRouting(t *testing.T) {
	var handled, zerologged []error

	SetWarningHandler(func(w error) { handled = append(handled, w) })
	defer SetWarningHandler(nil)

	Warn(NewConvergenceWarning("GradientDescent", 1, ""))
	if len(handled) != 1 {
		t.Fatalf("handler received %d warnings, want 1", len(handled))
	}

	SetZerologWarnFunc(func(w error) { zerologged = append(zerologged, w) })
	defer SetZerologWarnFunc(nil)

	Warn(NewConvergenceWarning("GradientDescent", 2, ""))
	if len(zerologged) != 1 {
		t.Errorf("zerolog func received %d warnings, want 1", len(zerologged))
	}
	if len(handled) != 1 {
		t.Errorf("handler should not be called when zerolog func is set")
	}
}

func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrEmptyData, "in %s: expected %d, got %d", "Fit", 1, 0)

	if !Is(wrapped, ErrEmptyData) {
		t.Error("Expected Is(wrapped, ErrEmptyData) to be true")
	}

	expectedMsg := "in Fit: expected 1, got 0"
	if !strings.Contains(wrapped.Error(), expectedMsg) {
		t.Errorf("Expected wrapped error to contain %q", expectedMsg)
	}
}

func TestCheckScalar(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		wantErr bool
	}{
		{"finite", 1.5, false},
		{"zero", 0, false},
		{"nan", math.NaN(), true},
		{"positive inf", math.Inf(1), true},
		{"negative inf", math.Inf(-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckScalar("gradient", tt.value, 0)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckScalar() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCheckMatrix(t *testing.T) {
	clean := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	if err := CheckMatrix("input", clean, 2, 2, 0); err != nil {
		t.Errorf("CheckMatrix() on finite matrix = %v", err)
	}

	dirty := mat.NewDense(2, 2, []float64{1, math.Inf(1), 3, math.NaN()})
	err := CheckMatrix("input", dirty, 2, 2, 0)
	if err == nil {
		t.Fatal("Expected error for non-finite matrix")
	}

	var numErr *NumericalInstabilityError
	if !As(err, &numErr) {
		t.Fatal("Error should be castable to *NumericalInstabilityError")
	}
	if len(numErr.Values) != 2 {
		t.Errorf("collected %d values, want 2", len(numErr.Values))
	}
}
