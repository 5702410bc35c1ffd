package spectrum

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-spectra/internal/testutil"
	"github.com/cwbudde/algo-spectra/spectra/uncertain"
)

func TestAddLivetimeRule(t *testing.T) {
	edges := testutil.LinearEdges(4, 0, 40)
	for _, calibrated := range []bool{false, true} {
		opts := func(counts []float64, lt float64) []Option {
			o := []Option{WithCounts(counts), WithLivetime(lt)}
			if calibrated {
				o = append(o, WithBinEdgesKeV(edges))
			}
			return o
		}
		a := mustNew(t, opts([]float64{1, 2, 3, 4}, 5)...)
		b := mustNew(t, opts([]float64{4, 3, 2, 1}, 7)...)

		sum, warns, err := a.Add(b)
		if err != nil {
			t.Fatalf("Add: %v", err)
		}
		if len(warns) != 0 {
			t.Fatalf("unexpected warnings %v", warns)
		}
		if sum.Kind() != KindCounts {
			t.Fatalf("Kind = %v, want counts", sum.Kind())
		}
		if lt, ok := sum.Livetime(); !ok || lt != 12 {
			t.Fatalf("Livetime = %v, %v; want 12", lt, ok)
		}
		got, _ := sum.CountsVals()
		testutil.RequireSliceNearlyEqual(t, got, []float64{5, 5, 5, 5}, 0)

		uncs, _ := sum.CountsUncs()
		testutil.RequireSliceNearlyEqual(t, uncs, []float64{
			math.Sqrt(5), math.Sqrt(5), math.Sqrt(5), math.Sqrt(5),
		}, 1e-12)
		if sum.IsCalibrated() != calibrated {
			t.Fatalf("IsCalibrated = %v, want %v", sum.IsCalibrated(), calibrated)
		}
	}
}

func TestAddMissingLivetimeWarns(t *testing.T) {
	a := mustNew(t, WithCounts([]float64{1, 2}), WithLivetime(5))
	b := mustNew(t, WithCounts([]float64{1, 2}))
	sum, warns, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !warns.Has(WarnLivetimeDropped) {
		t.Fatalf("warnings = %v, want livetime_dropped", warns)
	}
	if _, ok := sum.Livetime(); ok {
		t.Fatal("sum should have no livetime")
	}
}

func TestAddRates(t *testing.T) {
	a := mustNew(t, WithCPS([]float64{1, 2}), WithUncs([]float64{0.3, 0.4}))
	b := mustNew(t, WithCPS([]float64{2, 2}), WithUncs([]float64{0.4, 0.3}))
	sum, _, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if sum.Kind() != KindRate {
		t.Fatalf("Kind = %v, want cps", sum.Kind())
	}
	uncs, _ := sum.CPSUncs()
	testutil.RequireSliceNearlyEqual(t, uncs, []float64{0.5, 0.5}, 1e-12)
}

func TestAddRejects(t *testing.T) {
	counts := mustNew(t, WithCounts([]float64{1, 2}), WithLivetime(1))
	rate := mustNew(t, WithCPS([]float64{1, 2}), WithLivetime(1))
	short := mustNew(t, WithCounts([]float64{1}))
	cal1 := mustNew(t, WithCounts([]float64{1, 2}), WithBinEdgesKeV([]float64{0, 1, 2}))
	cal2 := mustNew(t, WithCounts([]float64{1, 2}), WithBinEdgesKeV([]float64{0, 1, 3}))

	tests := []struct {
		name    string
		a, b    *Spectrum
		wantErr error
	}{
		{name: "mixed kinds", a: counts, b: rate, wantErr: ErrDomain},
		{name: "length", a: counts, b: short, wantErr: ErrDomain},
		{name: "calibration state", a: counts, b: cal1, wantErr: ErrDomain},
		{name: "different calibration", a: cal1, b: cal2, wantErr: ErrNotImplemented},
		{name: "nil", a: counts, b: nil, wantErr: ErrDomain},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := tt.a.Add(tt.b); !errors.Is(err, tt.wantErr) {
				t.Fatalf("Add err = %v, want %v", err, tt.wantErr)
			}
			if _, _, err := tt.a.Subtract(tt.b); !errors.Is(err, tt.wantErr) && tt.name != "mixed kinds" {
				t.Fatalf("Subtract err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSubtractAlwaysRate(t *testing.T) {
	pairs := []struct {
		name string
		a, b []Option
		warn WarningCode
	}{
		{
			name: "counts with livetimes",
			a:    []Option{WithCounts([]float64{10, 20, 30}), WithLivetime(10)},
			b:    []Option{WithCounts([]float64{5, 5, 5}), WithLivetime(5)},
			warn: WarnCountsConvertedToRate,
		},
		{
			name: "counts minus tiny background",
			a:    []Option{WithCounts([]float64{0, 0, 1}), WithLivetime(1)},
			b:    []Option{WithCounts([]float64{3, 0, 0}), WithLivetime(100), WithRealtime(120)},
			warn: WarnCountsConvertedToRate,
		},
		{
			name: "counts without livetime minus rate",
			a:    []Option{WithCounts([]float64{1, 2, 3})},
			b:    []Option{WithCPS([]float64{1, 1, 1})},
			warn: WarnLivetimeIgnored,
		},
	}
	for _, p := range pairs {
		t.Run(p.name, func(t *testing.T) {
			a, b := mustNew(t, p.a...), mustNew(t, p.b...)
			diff, warns, err := a.Subtract(b)
			if err != nil {
				t.Fatalf("Subtract: %v", err)
			}
			if diff.Kind() != KindRate {
				t.Fatalf("Kind = %v, want cps", diff.Kind())
			}
			if _, ok := diff.Livetime(); ok {
				t.Fatal("difference carries a livetime")
			}
			if !warns.Has(p.warn) {
				t.Fatalf("warnings = %v, want %s", warns, p.warn)
			}
		})
	}
}

func TestSubtractValues(t *testing.T) {
	a := mustNew(t, WithCounts([]float64{10, 20}), WithLivetime(10))
	b := mustNew(t, WithCPS([]float64{0.5, 0.5}), WithUncs([]float64{0, 0}))
	diff, warns, err := a.Subtract(b)
	if err != nil {
		t.Fatalf("Subtract: %v", err)
	}
	got, _ := diff.CPSVals()
	testutil.RequireSliceNearlyEqual(t, got, []float64{0.5, 1.5}, 1e-12)
	uncs, _ := diff.CPSUncs()
	testutil.RequireSliceNearlyEqual(t, uncs, []float64{math.Sqrt(10) / 10, math.Sqrt(20) / 10}, 1e-12)
	if len(warns) != 1 || warns[0].Code != WarnCountsConvertedToRate {
		t.Fatalf("warnings = %v", warns)
	}

	r1 := mustNew(t, WithCPS([]float64{3, 3}))
	r2 := mustNew(t, WithCPS([]float64{1, 2}))
	rd, warns, err := r1.Subtract(r2)
	if err != nil || len(warns) != 0 {
		t.Fatalf("rate subtract: %v %v", err, warns)
	}
	got, _ = rd.CPSVals()
	testutil.RequireSliceNearlyEqual(t, got, []float64{2, 1}, 0)
}

func TestSubtractWithoutLivetimesFails(t *testing.T) {
	a := mustNew(t, WithCounts([]float64{1, 2}))
	b := mustNew(t, WithCounts([]float64{1, 2}))
	if _, _, err := a.Subtract(b); !errors.Is(err, ErrDomain) {
		t.Fatalf("err = %v, want ErrDomain", err)
	}
}

func TestScaleRejection(t *testing.T) {
	s := mustNew(t, WithCounts([]float64{1, 2, 3}))
	for _, k := range []float64{0, math.Inf(1), math.Inf(-1), math.NaN()} {
		if _, err := s.Mul(k); !errors.Is(err, ErrValidation) {
			t.Fatalf("Mul(%v) err = %v, want ErrValidation", k, err)
		}
		if _, err := s.Div(k); !errors.Is(err, ErrValidation) {
			t.Fatalf("Div(%v) err = %v, want ErrValidation", k, err)
		}
	}
	if _, err := s.Scale(uncertain.Value{Nominal: 2, Sigma: math.NaN()}); !errors.Is(err, ErrValidation) {
		t.Fatalf("NaN sigma err = %v", err)
	}
	if _, err := s.DivUncertain(uncertain.Value{Nominal: 0, Sigma: 1}); !errors.Is(err, ErrValidation) {
		t.Fatalf("DivUncertain(0) err = %v", err)
	}
}

func TestScaleKeepsKindAndCalibration(t *testing.T) {
	s := mustNew(t,
		WithCounts([]float64{4, 9}),
		WithLivetime(3),
		WithRealtime(4),
		WithBinEdgesKeV([]float64{0, 1, 2}),
	)
	scaled, err := s.Mul(-2)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	if scaled.Kind() != KindCounts || !scaled.IsCalibrated() {
		t.Fatal("Mul changed kind or calibration")
	}
	if _, ok := scaled.Livetime(); ok {
		t.Fatal("scaled spectrum kept livetime")
	}
	if _, ok := scaled.Realtime(); ok {
		t.Fatal("scaled spectrum kept realtime")
	}
	v, _ := scaled.CountsVals()
	u, _ := scaled.CountsUncs()
	testutil.RequireSliceNearlyEqual(t, v, []float64{-8, -18}, 0)
	testutil.RequireSliceNearlyEqual(t, u, []float64{4, 6}, 0)

	half, err := s.Div(2)
	if err != nil {
		t.Fatalf("Div: %v", err)
	}
	v, _ = half.CountsVals()
	testutil.RequireSliceNearlyEqual(t, v, []float64{2, 4.5}, 0)
}

func TestScaleUncertainFactor(t *testing.T) {
	s := mustNew(t, WithCPS([]float64{10}), WithUncs([]float64{1}))
	out, err := s.Scale(uncertain.Value{Nominal: 2, Sigma: 0.5})
	if err != nil {
		t.Fatalf("Scale: %v", err)
	}
	v, _ := out.CPSVals()
	u, _ := out.CPSUncs()
	testutil.RequireNearlyEqual(t, v[0], 20, 0)
	// sqrt((2*1)^2 + (10*0.5)^2)
	testutil.RequireNearlyEqual(t, u[0], math.Sqrt(29), 1e-12)

	d, err := s.DivUncertain(uncertain.Value{Nominal: 2, Sigma: 0.5})
	if err != nil {
		t.Fatalf("DivUncertain: %v", err)
	}
	v, _ = d.CPSVals()
	u, _ = d.CPSUncs()
	testutil.RequireNearlyEqual(t, v[0], 5, 1e-12)
	// 1/k = 0.5 +/- 0.125: sqrt((0.5*1)^2 + (10*0.125)^2)
	testutil.RequireNearlyEqual(t, u[0], math.Sqrt(0.25+1.5625), 1e-12)
}

func TestSum(t *testing.T) {
	a := mustNew(t, WithCounts([]float64{1, 1}), WithLivetime(1))
	b := mustNew(t, WithCounts([]float64{2, 2}), WithLivetime(2))
	c := mustNew(t, WithCounts([]float64{3, 3}))

	total, warns, err := Sum(a, b)
	if err != nil || len(warns) != 0 {
		t.Fatalf("Sum: %v %v", err, warns)
	}
	if lt, _ := total.Livetime(); lt != 3 {
		t.Fatalf("livetime = %v, want 3", lt)
	}

	total, warns, err = Sum(a, b, c)
	if err != nil {
		t.Fatalf("Sum: %v", err)
	}
	v, _ := total.CountsVals()
	testutil.RequireSliceNearlyEqual(t, v, []float64{6, 6}, 0)
	if !warns.Has(WarnLivetimeDropped) {
		t.Fatalf("warnings = %v", warns)
	}

	if _, _, err := Sum(); !errors.Is(err, ErrValidation) {
		t.Fatalf("empty Sum err = %v", err)
	}
	single, _, err := Sum(a)
	if err != nil || single == a {
		t.Fatalf("single Sum should copy: %v", err)
	}
}

func TestArithmeticDoesNotMutate(t *testing.T) {
	a := mustNew(t, WithCounts([]float64{1, 2}), WithLivetime(1))
	b := mustNew(t, WithCounts([]float64{3, 4}), WithLivetime(1))
	_, _, _ = a.Add(b)
	_, _, _ = a.Subtract(b)
	_, _ = a.Mul(3)
	v, _ := a.CountsVals()
	testutil.RequireSliceNearlyEqual(t, v, []float64{1, 2}, 0)
	if lt, _ := a.Livetime(); lt != 1 {
		t.Fatalf("livetime mutated: %v", lt)
	}
}
