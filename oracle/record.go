package oracle

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/arloliu/linfit/fixture"
	"github.com/arloliu/linfit/regression"
)

// Record pairs a fit result with the identity of the dataset it came from.
// The fingerprint pins the exact input bits, so a stored record can be
// re-validated later against a regenerated dataset. Records are the
// interchange format between the engine, the reference path, and any
// external tool producing the same JSON shape.
type Record struct {
	Name        string                `json:"name"`
	Fingerprint uint64                `json:"fingerprint,string"`
	Result      *regression.FitResult `json:"result"`
}

// NewRecord builds a record binding the result to the dataset's content
// fingerprint.
func NewRecord(d *fixture.Dataset, result *regression.FitResult) *Record {
	return &Record{
		Name:        d.Name,
		Fingerprint: fixture.Fingerprint(d),
		Result:      result,
	}
}

// WriteRecord serializes the record as indented JSON.
func WriteRecord(w io.Writer, rec *Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(rec)
}

// ReadRecord parses a record written by WriteRecord.
func ReadRecord(r io.Reader) (*Record, error) {
	var rec Record
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	if rec.Result == nil {
		return nil, fmt.Errorf("record %q has no result", rec.Name)
	}

	return &rec, nil
}

// Validate fits the dataset with the engine, fits it again along the
// reference path, and compares the two at the given digit threshold.
func Validate(d *fixture.Dataset, digits float64) (*Report, error) {
	got, err := regression.Fit(d.X, d.Y)
	if err != nil {
		return nil, fmt.Errorf("engine fit of %s: %w", d.Name, err)
	}

	want, err := Fit(d.X, d.Y)
	if err != nil {
		return nil, fmt.Errorf("reference fit of %s: %w", d.Name, err)
	}

	return Compare(got, want, digits), nil
}
