package preprocessing

import (
	"math"
	"testing"

	"github.com/YuminosukeSato/linreg/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

func TestStandardScaler_Fit(t *testing.T) {
	tests := []struct {
		name      string
		X         *mat.Dense
		wantMean  []float64
		wantScale []float64
	}{
		{
			name:      "two points",
			X:         mat.NewDense(2, 2, []float64{0, 10, 100, 20}),
			wantMean:  []float64{50, 15},
			wantScale: []float64{50, 5},
		},
		{
			// 母標準偏差: sqrt(((1-2.5)^2+(2-2.5)^2+(3-2.5)^2+(4-2.5)^2)/4) = sqrt(1.25)
			name:      "population std",
			X:         mat.NewDense(4, 1, []float64{1, 2, 3, 4}),
			wantMean:  []float64{2.5},
			wantScale: []float64{math.Sqrt(1.25)},
		},
		{
			name:      "constant column keeps zero scale",
			X:         mat.NewDense(3, 2, []float64{1, 7, 2, 7, 3, 7}),
			wantMean:  []float64{2, 7},
			wantScale: []float64{math.Sqrt(2.0 / 3.0), 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStandardScalerDefault()
			if err := s.Fit(tt.X); err != nil {
				t.Fatalf("Fit() error = %v", err)
			}
			for j := range tt.wantMean {
				if math.Abs(s.Mean[j]-tt.wantMean[j]) > 1e-12 {
					t.Errorf("Mean[%d] = %v, want %v", j, s.Mean[j], tt.wantMean[j])
				}
				if math.Abs(s.Scale[j]-tt.wantScale[j]) > 1e-12 {
					t.Errorf("Scale[%d] = %v, want %v", j, s.Scale[j], tt.wantScale[j])
				}
			}
		})
	}
}

func TestStandardScaler_TransformRoundTrip(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		240000, 3650,
		139800, 3800,
		150500, 4400,
		185530, 4450,
	})

	s := NewStandardScalerDefault()
	Xs, err := s.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	r, c := Xs.Dims()
	for j := 0; j < c; j++ {
		col := mat.Col(nil, j, Xs)
		var sum, sq float64
		for _, v := range col {
			sum += v
			sq += v * v
		}
		if math.Abs(sum/float64(r)) > 1e-12 {
			t.Errorf("column %d mean = %v, want 0", j, sum/float64(r))
		}
		if math.Abs(sq/float64(r)-1) > 1e-12 {
			t.Errorf("column %d variance = %v, want 1", j, sq/float64(r))
		}
	}

	back, err := s.InverseTransform(Xs)
	if err != nil {
		t.Fatalf("InverseTransform() error = %v", err)
	}
	if !mat.EqualApprox(back, X, 1e-9) {
		t.Errorf("InverseTransform(Transform(X)) != X")
	}
}

func TestStandardScaler_ZeroVariance(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{1, 5, 2, 5, 3, 5})
	s := NewStandardScalerDefault()

	Xs, err := s.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	cols := s.ZeroVarianceColumns()
	if len(cols) != 1 || cols[0] != 1 {
		t.Fatalf("ZeroVarianceColumns() = %v, want [1]", cols)
	}
	if !math.IsNaN(Xs.At(0, 1)) {
		t.Errorf("constant column should normalize to NaN, got %v", Xs.At(0, 1))
	}
}

func TestStandardScaler_Errors(t *testing.T) {
	s := NewStandardScalerDefault()

	if _, err := s.Transform(mat.NewDense(1, 1, []float64{1})); err == nil {
		t.Error("Transform() before Fit should fail")
	} else {
		var notFitted *errors.NotFittedError
		if !errors.As(err, &notFitted) {
			t.Errorf("expected NotFittedError, got %v", err)
		}
	}

	if err := s.Fit(&mat.Dense{}); !errors.Is(err, errors.ErrEmptyData) {
		t.Errorf("Fit(empty) error = %v, want ErrEmptyData", err)
	}

	if err := s.Fit(mat.NewDense(2, 2, []float64{1, 2, 3, 4})); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Transform(mat.NewDense(1, 3, nil)); err == nil {
		t.Error("Transform() with wrong width should fail")
	}
}

func TestStandardScaler_Flags(t *testing.T) {
	X := mat.NewDense(2, 1, []float64{2, 4})

	s := NewStandardScaler(false, false)
	Xs, err := s.FitTransform(X)
	if err != nil {
		t.Fatal(err)
	}
	if !mat.Equal(Xs, X) {
		t.Errorf("scaler with both flags off should be identity")
	}
	if s.String() != "StandardScaler(with_mean=false, with_std=false, n_features=1)" {
		t.Errorf("String() = %q", s.String())
	}
}
