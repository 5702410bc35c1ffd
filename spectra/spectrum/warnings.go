package spectrum

import (
	"context"
	"log/slog"
	"strings"
)

// WarningCode identifies a non-fatal condition.
type WarningCode string

const (
	// WarnLivetimeDropped: an addition had an operand without livetime, so
	// the sum has none.
	WarnLivetimeDropped WarningCode = "livetime_dropped"
	// WarnCountsConvertedToRate: a counts-based operand was divided by its
	// livetime before subtraction.
	WarnCountsConvertedToRate WarningCode = "counts_converted_to_rate"
	// WarnLivetimeIgnored: a counts-based operand without livetime entered a
	// subtraction as if its livetime were one second.
	WarnLivetimeIgnored WarningCode = "livetime_ignored"
	// WarnCountsDropped: rebinning lost content outside the input range.
	WarnCountsDropped WarningCode = "counts_dropped"
)

// Warning is one non-fatal diagnostic.
type Warning struct {
	Code    WarningCode
	Message string
	Attrs   []slog.Attr
}

func (w Warning) String() string {
	var b strings.Builder
	b.WriteString(string(w.Code))
	b.WriteString(": ")
	b.WriteString(w.Message)
	for _, a := range w.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.String())
	}
	return b.String()
}

// LogValue implements [slog.LogValuer].
func (w Warning) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(w.Attrs)+2)
	attrs = append(attrs, slog.String("code", string(w.Code)), slog.String("msg", w.Message))
	attrs = append(attrs, w.Attrs...)
	return slog.GroupValue(attrs...)
}

// Warnings is the diagnostics list returned next to a result.
type Warnings []Warning

// Has reports whether any warning carries code.
func (ws Warnings) Has(code WarningCode) bool {
	for _, w := range ws {
		if w.Code == code {
			return true
		}
	}
	return false
}

// LogTo emits every warning at warn level on l. A nil logger discards them.
func (ws Warnings) LogTo(l *slog.Logger) {
	if l == nil {
		return
	}
	for _, w := range ws {
		attrs := make([]slog.Attr, 0, len(w.Attrs)+1)
		attrs = append(attrs, slog.String("code", string(w.Code)))
		attrs = append(attrs, w.Attrs...)
		l.LogAttrs(context.Background(), slog.LevelWarn, w.Message, attrs...)
	}
}

func newWarning(code WarningCode, msg string, attrs ...slog.Attr) Warning {
	return Warning{Code: code, Message: msg, Attrs: attrs}
}
