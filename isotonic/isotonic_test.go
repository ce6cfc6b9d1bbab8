package isotonic

import (
	"math"
	"testing"
)

func isNonDecreasing(v []float64) bool {
	for i := 1; i < len(v); i++ {
		if v[i] < v[i-1] {
			return false
		}
	}
	return true
}

func TestIsotonicRegression_MonotoneOutput(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6, 7}
	y := []float64{1, 3, 2, 4, 3, 5, 6} // noisy but trending up

	ir := NewIsotonicRegression()
	if err := ir.Fit(x, y, nil); err != nil {
		t.Fatalf("Failed to fit model: %v", err)
	}

	preds, err := ir.Predict(x)
	if err != nil {
		t.Fatalf("Failed to predict: %v", err)
	}
	if !isNonDecreasing(preds) {
		t.Errorf("predictions are not non-decreasing: %v", preds)
	}
}

func TestIsotonicRegression_AlreadyMonotone(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	y := []float64{1, 2, 3, 4}

	ir := NewIsotonicRegression()
	if err := ir.Fit(x, y, nil); err != nil {
		t.Fatalf("Failed to fit model: %v", err)
	}

	preds, err := ir.Predict(x)
	if err != nil {
		t.Fatalf("Failed to predict: %v", err)
	}
	for i := range y {
		if math.Abs(preds[i]-y[i]) > 1e-12 {
			t.Errorf("sample %d: expected %v, got %v", i, y[i], preds[i])
		}
	}
}

func TestIsotonicRegression_PoolsViolators(t *testing.T) {
	// A single inversion must be pooled into its mean.
	x := []float64{1, 2}
	y := []float64{4, 2}

	ir := NewIsotonicRegression()
	if err := ir.Fit(x, y, nil); err != nil {
		t.Fatalf("Failed to fit model: %v", err)
	}

	preds, err := ir.Predict(x)
	if err != nil {
		t.Fatalf("Failed to predict: %v", err)
	}
	if preds[0] != 3 || preds[1] != 3 {
		t.Errorf("expected pooled mean [3 3], got %v", preds)
	}
}

func TestIsotonicRegression_WeightedPooling(t *testing.T) {
	x := []float64{1, 2}
	y := []float64{4, 0}
	w := []float64{3, 1}

	ir := NewIsotonicRegression()
	if err := ir.Fit(x, y, w); err != nil {
		t.Fatalf("Failed to fit model: %v", err)
	}

	preds, err := ir.Predict(x)
	if err != nil {
		t.Fatalf("Failed to predict: %v", err)
	}
	if preds[0] != 3 || preds[1] != 3 {
		t.Errorf("expected weighted pooled mean [3 3], got %v", preds)
	}
}

func TestIsotonicRegression_Decreasing(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{5, 4, 6, 2, 1}

	ir := NewIsotonicRegression().WithIncreasing(false)
	if err := ir.Fit(x, y, nil); err != nil {
		t.Fatalf("Failed to fit model: %v", err)
	}

	preds, err := ir.Predict(x)
	if err != nil {
		t.Fatalf("Failed to predict: %v", err)
	}
	for i := 1; i < len(preds); i++ {
		if preds[i] > preds[i-1] {
			t.Errorf("predictions are not non-increasing: %v", preds)
			break
		}
	}
}

func TestIsotonicRegression_InterpolationAndClipping(t *testing.T) {
	x := []float64{0, 10}
	y := []float64{0, 10}

	ir := NewIsotonicRegression()
	if err := ir.Fit(x, y, nil); err != nil {
		t.Fatalf("Failed to fit model: %v", err)
	}

	preds, err := ir.Predict([]float64{-5, 5, 15})
	if err != nil {
		t.Fatalf("Failed to predict: %v", err)
	}
	if preds[0] != 0 {
		t.Errorf("below range: expected clip to 0, got %v", preds[0])
	}
	if preds[1] != 5 {
		t.Errorf("midpoint: expected interpolated 5, got %v", preds[1])
	}
	if preds[2] != 10 {
		t.Errorf("above range: expected clip to 10, got %v", preds[2])
	}
}

func TestIsotonicRegression_Clone(t *testing.T) {
	ir := NewIsotonicRegression().WithIncreasing(false)
	if err := ir.Fit([]float64{1, 2}, []float64{2, 1}, nil); err != nil {
		t.Fatalf("Failed to fit model: %v", err)
	}

	clone, ok := ir.Clone().(*IsotonicRegression)
	if !ok {
		t.Fatal("Clone did not return an *IsotonicRegression")
	}
	if clone.Increasing {
		t.Error("clone lost the Increasing=false constraint")
	}
	if clone.IsFitted() {
		t.Error("clone must not carry fitted state")
	}
}

func TestIsotonicRegression_Errors(t *testing.T) {
	ir := NewIsotonicRegression()

	if err := ir.Fit(nil, nil, nil); err == nil {
		t.Error("expected error for empty data")
	}
	if err := ir.Fit([]float64{1}, []float64{1, 2}, nil); err == nil {
		t.Error("expected error for x/y length mismatch")
	}
	if _, err := ir.Predict([]float64{1}); err == nil {
		t.Error("expected not-fitted error before Fit")
	}
}
