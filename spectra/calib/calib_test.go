package calib

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-spectra/internal/testutil"
)

func TestChannelEdges(t *testing.T) {
	testutil.RequireSliceNearlyEqual(t, ChannelEdges(3), []float64{-0.5, 0.5, 1.5, 2.5}, 0)
	if ChannelEdges(0) != nil {
		t.Fatal("ChannelEdges(0) should be nil")
	}
}

func TestPolynomial(t *testing.T) {
	p, err := NewPolynomial(1, 2, 0.5)
	if err != nil {
		t.Fatalf("NewPolynomial: %v", err)
	}
	// 1 + 2*2 + 0.5*4
	if got := p.ChannelToKeV(2); got != 7 {
		t.Fatalf("ChannelToKeV(2) = %v, want 7", got)
	}
	got := p.ChannelsToKeV([]float64{0, 1})
	testutil.RequireSliceNearlyEqual(t, got, []float64{1, 3.5}, 1e-12)
}

func TestNewPolynomialErrors(t *testing.T) {
	if _, err := NewPolynomial(); !errors.Is(err, ErrBadCoefficients) {
		t.Fatalf("err = %v, want ErrBadCoefficients", err)
	}
	if _, err := NewPolynomial(1, math.NaN()); !errors.Is(err, ErrBadCoefficients) {
		t.Fatalf("err = %v, want ErrBadCoefficients", err)
	}
	if _, err := NewLinear(0, 0); !errors.Is(err, ErrBadCoefficients) {
		t.Fatalf("err = %v, want ErrBadCoefficients", err)
	}
}

func TestBinEdgesLinear(t *testing.T) {
	lin, err := NewLinear(0, 2)
	if err != nil {
		t.Fatalf("NewLinear: %v", err)
	}
	edges, err := BinEdges(lin, 3)
	if err != nil {
		t.Fatalf("BinEdges: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, edges, []float64{-1, 1, 3, 5}, 1e-12)
}

func TestBinEdgesRejectsDecreasing(t *testing.T) {
	dec := Func(func(ch float64) float64 { return -ch })
	if _, err := BinEdges(dec, 4); !errors.Is(err, ErrNotMonotonic) {
		t.Fatalf("err = %v, want ErrNotMonotonic", err)
	}
}

type shortCal struct{}

func (shortCal) ChannelsToKeV(ch []float64) []float64 { return ch[:1] }

func TestBinEdgesRejectsWrongLength(t *testing.T) {
	if _, err := BinEdges(shortCal{}, 4); !errors.Is(err, ErrBadOutput) {
		t.Fatalf("err = %v, want ErrBadOutput", err)
	}
	if _, err := BinEdges(nil, 4); err == nil {
		t.Fatal("expected error for nil calibration")
	}
}

func TestFingerprint(t *testing.T) {
	a := []float64{0, 1, 2, 3}
	b := []float64{0, 1, 2, 3}
	c := []float64{0, 1, 2, 3.0000001}
	if Fingerprint(a) != Fingerprint(b) {
		t.Fatal("identical edges must share a fingerprint")
	}
	if Fingerprint(a) == Fingerprint(c) {
		t.Fatal("different edges should not collide here")
	}
	if Fingerprint(nil) != 0 {
		t.Fatal("nil edges should fingerprint to 0")
	}
}
