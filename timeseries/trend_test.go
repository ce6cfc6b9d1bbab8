package timeseries

import (
	"math"
	"testing"
	"time"

	"gonum.org/v1/gonum/mat"
)

func TestPowerTrend_Linear(t *testing.T) {
	f := continuousFrame(t)

	pt := NewPowerTrend().
		WithFrequency(24 * time.Hour).
		WithOrigin(day(2018, 11, 1))
	out, err := pt.FitTransform(f)
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}

	trend, err := out.Column("trend")
	if err != nil {
		t.Fatalf("missing trend column: %v", err)
	}
	for i := 0; i < 60; i++ {
		if trend[i] != float64(i) {
			t.Errorf("row %d: expected %v, got %v", i, float64(i), trend[i])
		}
	}
}

func TestPowerTrend_Defaults(t *testing.T) {
	f := continuousFrame(t)

	pt := NewPowerTrend()
	out, err := pt.FitTransform(f)
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}

	trend, _ := out.Column("trend")
	for i := 0; i < 60; i++ {
		if trend[i] != float64(i) {
			t.Errorf("row %d: expected %v, got %v", i, float64(i), trend[i])
		}
	}
	if pt.FittedFrequency() != 24*time.Hour {
		t.Errorf("expected inferred frequency 24h, got %v", pt.FittedFrequency())
	}
	if !pt.FittedOrigin().Equal(day(2018, 11, 1)) {
		t.Errorf("expected inferred origin 2018-11-01, got %v", pt.FittedOrigin())
	}
}

func TestPowerTrend_Quadratic(t *testing.T) {
	index := dateRange(day(1988, 8, 8), 4, 24*time.Hour)
	f, err := NewFrame(index, []string{"A"}, mat.NewDense(4, 1, []float64{1, 2, 3, 4}))
	if err != nil {
		t.Fatalf("NewFrame failed: %v", err)
	}

	// Origin two days before the first row.
	out, err := NewPowerTrend().
		WithPower(2).
		WithFrequency(24 * time.Hour).
		WithOrigin(day(1988, 8, 6)).
		FitTransform(f)
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}

	trend, _ := out.Column("trend")
	want := []float64{4, 9, 16, 25}
	for i := range want {
		if math.Abs(trend[i]-want[i]) > 1e-12 {
			t.Errorf("row %d: expected %v, got %v", i, want[i], trend[i])
		}
	}
}

func TestPowerTrend_FractionalSteps(t *testing.T) {
	// Rows between grid points still get a well-defined trend value.
	index := []time.Time{day(2020, 1, 1).Add(12 * time.Hour)}
	f, err := NewFrame(index, []string{"A"}, mat.NewDense(1, 1, []float64{0}))
	if err != nil {
		t.Fatalf("NewFrame failed: %v", err)
	}

	out, err := NewPowerTrend().
		WithFrequency(24 * time.Hour).
		WithOrigin(day(2020, 1, 1)).
		FitTransform(f)
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}
	trend, _ := out.Column("trend")
	if trend[0] != 0.5 {
		t.Errorf("expected 0.5 steps, got %v", trend[0])
	}
}

func TestPowerTrend_Errors(t *testing.T) {
	f := nonContinuousFrame(t)

	if err := NewPowerTrend().Fit(f); err == nil {
		t.Error("expected error when frequency cannot be inferred")
	}
	if _, err := NewPowerTrend().Transform(f); err == nil {
		t.Error("expected not-fitted error")
	}
}

func TestDateIndicator_Transform(t *testing.T) {
	index := dateRange(day(2019, 12, 29), 7, 24*time.Hour)
	data := mat.NewDense(7, 1, nil)
	for i := 0; i < 7; i++ {
		data.Set(i, 0, float64(i))
	}
	f, err := NewFrame(index, []string{"A"}, data)
	if err != nil {
		t.Fatalf("NewFrame failed: %v", err)
	}

	ind := NewDateIndicator("around_new_year_2020", []time.Time{
		day(2019, 12, 31),
		day(2020, 1, 1),
		day(2020, 1, 2),
	})
	out, err := ind.FitTransform(f)
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}

	got, err := out.Column("around_new_year_2020")
	if err != nil {
		t.Fatalf("missing indicator column: %v", err)
	}
	want := []float64{0, 0, 1, 1, 1, 0, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestDateIndicator_EmptyName(t *testing.T) {
	f := continuousFrame(t)
	if err := NewDateIndicator("", nil).Fit(f); err == nil {
		t.Error("expected error for empty indicator name")
	}
}
