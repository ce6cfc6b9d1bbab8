package linear

import (
	"math"
	"testing"
)

func TestUnivariateRegression_ExactLine(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4}
	y := []float64{1, 3, 5, 7, 9} // y = 2x + 1

	reg := NewUnivariateRegression()
	if err := reg.Fit(x, y, nil); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if math.Abs(reg.Slope()-2) > 1e-12 {
		t.Errorf("expected slope 2, got %v", reg.Slope())
	}
	if math.Abs(reg.Intercept()-1) > 1e-12 {
		t.Errorf("expected intercept 1, got %v", reg.Intercept())
	}

	pred, err := reg.Predict([]float64{10, -1})
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	for i, want := range []float64{21, -1} {
		if math.Abs(pred[i]-want) > 1e-12 {
			t.Errorf("prediction %d: expected %v, got %v", i, want, pred[i])
		}
	}
}

func TestUnivariateRegression_SampleWeights(t *testing.T) {
	// Zero-weighted outliers must not affect the fit.
	x := []float64{0, 1, 2, 3}
	y := []float64{0, 1, 100, 3}
	w := []float64{1, 1, 0, 1}

	reg := NewUnivariateRegression()
	if err := reg.Fit(x, y, w); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if math.Abs(reg.Slope()-1) > 1e-12 || math.Abs(reg.Intercept()) > 1e-12 {
		t.Errorf("expected y=x, got slope=%v intercept=%v", reg.Slope(), reg.Intercept())
	}
}

func TestUnivariateRegression_ConstantColumn(t *testing.T) {
	x := []float64{5, 5, 5}
	y := []float64{1, 2, 3}

	reg := NewUnivariateRegression()
	if err := reg.Fit(x, y, nil); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	pred, err := reg.Predict([]float64{5, 0})
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	for i, p := range pred {
		if math.Abs(p-2) > 1e-12 {
			t.Errorf("prediction %d: expected mean 2, got %v", i, p)
		}
	}
}

func TestUnivariateRegression_Clone(t *testing.T) {
	reg := NewUnivariateRegression()
	if err := reg.Fit([]float64{0, 1}, []float64{0, 1}, nil); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	clone := reg.Clone()
	if _, err := clone.Predict([]float64{1}); err == nil {
		t.Error("clone must start unfitted")
	}
	if _, err := reg.Predict([]float64{1}); err != nil {
		t.Errorf("original must stay fitted: %v", err)
	}
}

func TestUnivariateRegression_Errors(t *testing.T) {
	reg := NewUnivariateRegression()

	if err := reg.Fit(nil, nil, nil); err == nil {
		t.Error("expected error for empty data")
	}
	if err := reg.Fit([]float64{1, 2}, []float64{1}, nil); err == nil {
		t.Error("expected error for length mismatch")
	}
	if err := reg.Fit([]float64{1, 2}, []float64{1, 2}, []float64{1}); err == nil {
		t.Error("expected error for weight length mismatch")
	}
	if err := reg.Fit([]float64{1, 2}, []float64{1, 2}, []float64{0, 0}); err == nil {
		t.Error("expected error for all-zero weights")
	}
	if _, err := reg.Predict([]float64{1}); err == nil {
		t.Error("expected not-fitted error")
	}
}
