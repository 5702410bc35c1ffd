package fileio

import "time"

// Record is the parsed content of one detector file.
type Record struct {
	// Data holds the counts per channel.
	Data []float64

	// Calibrated reports whether EnergyBinEdges is valid.
	Calibrated bool
	// EnergyBinEdges has len(Data)+1 strictly increasing edges in keV.
	EnergyBinEdges []float64

	Livetime    float64
	HasLivetime bool
	Realtime    float64
	HasRealtime bool

	CollectionStart    time.Time
	HasCollectionStart bool
	CollectionStop     time.Time
	HasCollectionStop  bool

	Filename string
}

// Parser reads a detector file into a Record.
type Parser interface {
	Parse(filename string) (*Record, error)
}

// ParserFunc adapts a function to the Parser interface.
type ParserFunc func(filename string) (*Record, error)

// Parse calls f(filename).
func (f ParserFunc) Parse(filename string) (*Record, error) {
	return f(filename)
}
