package timeseries

import (
	"math"
	"testing"
	"time"

	"gonum.org/v1/gonum/mat"
)

// nonContinuousFrame mirrors a table indexed by three unrelated
// timestamps, far apart and unordered.
func nonContinuousFrame(t *testing.T) *Frame {
	t.Helper()
	index := []time.Time{
		time.Date(1988, 8, 8, 11, 12, 12, 0, time.UTC),
		time.Date(2000, 1, 1, 7, 6, 5, 0, time.UTC),
		time.Date(1950, 12, 31, 0, 0, 0, 0, time.UTC),
	}
	f, err := NewFrame(index, []string{"B", "C"}, mat.NewDense(3, 2, []float64{
		1, 0,
		2, 1,
		2, 0,
	}))
	if err != nil {
		t.Fatalf("NewFrame failed: %v", err)
	}
	return f
}

func TestTimeFeatures_AllFlags(t *testing.T) {
	f := nonContinuousFrame(t)

	tf := &TimeFeatures{
		Second:      true,
		Minute:      true,
		Hour:        true,
		DayOfWeek:   true,
		DayOfMonth:  true,
		DayOfYear:   true,
		WeekOfMonth: true,
		WeekOfYear:  true,
		Month:       true,
		Year:        true,
	}

	out, err := tf.FitTransform(f)
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}

	expected := map[string][]float64{
		"second":        {12, 5, 0},
		"minute":        {12, 6, 0},
		"hour":          {11, 7, 0},
		"day_of_week":   {1, 6, 7},
		"day_of_month":  {8, 1, 31},
		"day_of_year":   {221, 1, 365},
		"week_of_month": {2, 1, 5},
		"week_of_year":  {32, 52, 52},
		"month":         {8, 1, 12},
		"year":          {1988, 2000, 1950},
	}
	for name, want := range expected {
		got, err := out.Column(name)
		if err != nil {
			t.Fatalf("missing column %q: %v", name, err)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("%s[%d]: expected %v, got %v", name, i, want[i], got[i])
			}
		}
	}

	// The original columns survive untouched.
	b, _ := out.Column("B")
	if b[0] != 1 || b[1] != 2 || b[2] != 2 {
		t.Errorf("column B was modified: %v", b)
	}
}

func TestTimeFeatures_SelectedFlags(t *testing.T) {
	f := nonContinuousFrame(t)

	out, err := (&TimeFeatures{DayOfMonth: true, Month: true, Year: true}).FitTransform(f)
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}

	want := []string{"B", "C", "day_of_month", "month", "year"}
	got := out.Columns()
	if len(got) != len(want) {
		t.Fatalf("expected columns %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("column %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestTimeFeatures_NotFitted(t *testing.T) {
	f := nonContinuousFrame(t)
	if _, err := NewTimeFeatures().Transform(f); err == nil {
		t.Error("expected not-fitted error")
	}
}

func TestCyclicalEncoder_Hour(t *testing.T) {
	index := dateRange(day(2020, 1, 1), 5, time.Hour)
	f, err := NewFrame(index, []string{"hour"}, mat.NewDense(5, 1, []float64{22, 23, 0, 1, 2}))
	if err != nil {
		t.Fatalf("NewFrame failed: %v", err)
	}

	out, err := NewCyclicalEncoder().FitTransform(f)
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}

	wantCos := []float64{0.866025, 0.965926, 1.000000, 0.965926, 0.866025}
	wantSin := []float64{-0.500000, -0.258819, 0.000000, 0.258819, 0.500000}

	cos, err := out.Column("hour_cos")
	if err != nil {
		t.Fatalf("missing hour_cos: %v", err)
	}
	sin, err := out.Column("hour_sin")
	if err != nil {
		t.Fatalf("missing hour_sin: %v", err)
	}
	for i := range wantCos {
		if math.Abs(cos[i]-wantCos[i]) > 1e-6 {
			t.Errorf("hour_cos[%d]: expected %v, got %v", i, wantCos[i], cos[i])
		}
		if math.Abs(sin[i]-wantSin[i]) > 1e-6 {
			t.Errorf("hour_sin[%d]: expected %v, got %v", i, wantSin[i], sin[i])
		}
	}
}

func TestCyclicalEncoder_ColumnOrder(t *testing.T) {
	// All cos columns come before all sin columns.
	index := dateRange(day(2020, 1, 1), 2, time.Hour)
	f, err := NewFrame(index, []string{"hour", "month"}, mat.NewDense(2, 2, []float64{
		0, 1,
		12, 6,
	}))
	if err != nil {
		t.Fatalf("NewFrame failed: %v", err)
	}

	out, err := NewCyclicalEncoder().FitTransform(f)
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}

	want := []string{"hour", "month", "hour_cos", "month_cos", "hour_sin", "month_sin"}
	got := out.Columns()
	if len(got) != len(want) {
		t.Fatalf("expected columns %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("column %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestCyclicalEncoder_AdditionalCycles(t *testing.T) {
	index := dateRange(day(2020, 1, 1), 4, time.Hour)
	f, err := NewFrame(index, []string{"quarter"}, mat.NewDense(4, 1, []float64{1, 2, 3, 4}))
	if err != nil {
		t.Fatalf("NewFrame failed: %v", err)
	}

	enc := NewCyclicalEncoder().WithAdditionalCycles(map[string]Cycle{
		"quarter": {Min: 1, Max: 4},
	})
	out, err := enc.FitTransform(f)
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}

	cos, err := out.Column("quarter_cos")
	if err != nil {
		t.Fatalf("missing quarter_cos: %v", err)
	}
	// quarter=1 sits at phase 0.
	if math.Abs(cos[0]-1) > 1e-12 {
		t.Errorf("quarter_cos[0]: expected 1, got %v", cos[0])
	}
}

func TestCyclicalEncoder_IgnoresUnknownColumns(t *testing.T) {
	index := dateRange(day(2020, 1, 1), 2, time.Hour)
	f, err := NewFrame(index, []string{"price"}, mat.NewDense(2, 1, []float64{3, 4}))
	if err != nil {
		t.Fatalf("NewFrame failed: %v", err)
	}

	out, err := NewCyclicalEncoder().FitTransform(f)
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}
	if out.NumColumns() != 1 {
		t.Errorf("expected no columns added, got %v", out.Columns())
	}
}
