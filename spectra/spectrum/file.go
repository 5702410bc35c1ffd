package spectrum

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-spectra/spectra/fileio"
)

// FromFile parses filename with the parser registered for its extension
// and builds a counts-based spectrum from the record.
func FromFile(filename string, reg *fileio.Registry) (*Spectrum, error) {
	if reg == nil {
		return nil, fmt.Errorf("%w: no parser registry for %s", ErrNotImplemented, filename)
	}
	rec, err := reg.Parse(filename)
	if err != nil {
		if errors.Is(err, fileio.ErrNotImplemented) {
			return nil, fmt.Errorf("%w: %w", ErrNotImplemented, err)
		}
		return nil, fmt.Errorf("spectrum: load %s: %w", filename, err)
	}
	return FromRecord(rec)
}

// FromRecord builds a counts-based spectrum from a parsed record. When the
// record carries more time information than a spectrum accepts, the start time
// and realtime win, then start and stop, then stop and realtime.
func FromRecord(rec *fileio.Record) (*Spectrum, error) {
	if rec == nil {
		return nil, fmt.Errorf("%w: nil record", ErrConstruction)
	}
	opts := []Option{
		WithCounts(rec.Data),
		WithSourceFilename(rec.Filename),
	}
	if rec.Calibrated {
		opts = append(opts, WithBinEdgesKeV(rec.EnergyBinEdges))
	}
	if rec.HasLivetime {
		opts = append(opts, WithLivetime(rec.Livetime))
	}

	switch {
	case rec.HasCollectionStart && rec.HasRealtime:
		opts = append(opts, WithStartTime(rec.CollectionStart), WithRealtime(rec.Realtime))
	case rec.HasCollectionStart && rec.HasCollectionStop:
		opts = append(opts, WithStartTime(rec.CollectionStart), WithStopTime(rec.CollectionStop))
	case rec.HasCollectionStop && rec.HasRealtime:
		opts = append(opts, WithStopTime(rec.CollectionStop), WithRealtime(rec.Realtime))
	case rec.HasCollectionStart:
		opts = append(opts, WithStartTime(rec.CollectionStart))
	case rec.HasCollectionStop:
		opts = append(opts, WithStopTime(rec.CollectionStop))
	case rec.HasRealtime:
		opts = append(opts, WithRealtime(rec.Realtime))
	}

	s, err := New(opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rec.Filename, err)
	}
	return s, nil
}
