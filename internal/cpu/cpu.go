// Package cpu reports the SIMD extensions the vector kernels behind the
// spectral arithmetic can dispatch to.
//
// Detection runs once and is cached. The result is informational: the
// vector and FFT libraries select their own kernels.
package cpu

import (
	"log/slog"
	"strings"
	"sync"
)

// Features describes the SIMD capabilities of the running processor.
type Features struct {
	Architecture string

	HasSSE2   bool
	HasAVX    bool
	HasAVX2   bool
	HasAVX512 bool
	HasNEON   bool
}

var (
	detected   Features
	detectOnce sync.Once
)

// Detect returns the cached feature set of the current processor.
func Detect() Features {
	detectOnce.Do(func() {
		detected = detect()
	})
	return detected
}

// List returns the names of the available extensions in ascending order of
// capability. It is empty on architectures without detected SIMD support.
func (f Features) List() []string {
	var out []string
	for _, e := range []struct {
		name string
		ok   bool
	}{
		{"sse2", f.HasSSE2},
		{"avx", f.HasAVX},
		{"avx2", f.HasAVX2},
		{"avx512", f.HasAVX512},
		{"neon", f.HasNEON},
	} {
		if e.ok {
			out = append(out, e.name)
		}
	}
	return out
}

// String formats the feature set as "arch[ext,ext]".
func (f Features) String() string {
	return f.Architecture + "[" + strings.Join(f.List(), ",") + "]"
}

// LogValue implements [slog.LogValuer].
func (f Features) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("arch", f.Architecture),
		slog.String("simd", strings.Join(f.List(), ",")),
	)
}
