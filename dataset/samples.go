// Package dataset reads the mileage/price training sample file.
//
// The file is UTF-8 CSV (a leading byte order mark is dropped) whose first
// line is exactly "km,price", followed by one "mileage,price" pair per line.
package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/linreg/pkg/errors"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"gonum.org/v1/gonum/mat"
)

// Header is the required first line of a sample file.
var Header = []string{"km", "price"}

// ErrInvalidHeader marks errors caused by a missing or wrong header line.
// Such errors also match errors.ErrInvalidTrainingData.
var ErrInvalidHeader = errors.New("invalid training data header")

// Sample is one observation.
type Sample struct {
	Mileage float64
	Price   float64
}

// Samples is an ordered, immutable-once-loaded sample set.
type Samples []Sample

// Len returns the number of samples.
func (s Samples) Len() int { return len(s) }

// Mileages returns the mileage column.
func (s Samples) Mileages() []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = v.Mileage
	}
	return out
}

// Prices returns the price column.
func (s Samples) Prices() []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = v.Price
	}
	return out
}

// Matrices returns the sample as two n×1 matrices, mileage and price.
// An empty set yields two empty matrices.
func (s Samples) Matrices() (X, y *mat.Dense) {
	if len(s) == 0 {
		return &mat.Dense{}, &mat.Dense{}
	}
	return mat.NewDense(len(s), 1, s.Mileages()), mat.NewDense(len(s), 1, s.Prices())
}

// LoadSamples opens path and reads it with ReadSamples.
//
// A missing file matches both errors.ErrMissingFile and
// errors.ErrInvalidTrainingData; an unreadable one matches
// errors.ErrPermissionDenied.
func LoadSamples(path string) (Samples, error) {
	f, err := os.Open(path)
	if err != nil {
		switch {
		case os.IsNotExist(err):
			return nil, errors.Mark(
				errors.NewDataError(path, 0, "file not found", errors.ErrMissingFile),
				errors.ErrInvalidTrainingData)
		case os.IsPermission(err):
			return nil, errors.NewDataError(path, 0, "permission denied", errors.ErrPermissionDenied)
		default:
			return nil, errors.Wrapf(err, "open training data %s", path)
		}
	}
	defer f.Close()

	return ReadSamples(f, path)
}

// ReadSamples parses a sample file from r. name is used in error messages.
//
// Line numbers in errors are 1-based. Blank lines are skipped. Every failure
// matches errors.ErrInvalidTrainingData; a file with a header but no data
// rows additionally matches errors.ErrEmptySample.
func ReadSamples(r io.Reader, name string) (Samples, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	cr := csv.NewReader(decoded)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	switch {
	case err == io.EOF:
		return nil, headerError(name, 1, "file is empty")
	case err != nil:
		return nil, parseError(name, err)
	}
	if !isHeader(header) {
		line, _ := cr.FieldPos(0)
		return nil, headerError(name, line, "expected header \"km,price\", got \""+strings.Join(header, ",")+"\"")
	}

	var samples Samples
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, parseError(name, err)
		}

		line, _ := cr.FieldPos(0)
		if len(record) != 2 {
			return nil, rowError(name, line, "expected 2 fields, got "+strconv.Itoa(len(record)))
		}

		var values [2]float64
		for i, field := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, rowError(name, line, Header[i]+" is not a number: \""+field+"\"")
			}
			if !errors.IsFinite(v) {
				return nil, rowError(name, line, Header[i]+" is not finite: \""+field+"\"")
			}
			values[i] = v
		}
		samples = append(samples, Sample{Mileage: values[0], Price: values[1]})
	}

	if len(samples) == 0 {
		return nil, errors.Mark(
			errors.NewDataError(name, 0, "no samples after header", errors.ErrEmptySample),
			errors.ErrInvalidTrainingData)
	}
	return samples, nil
}

func isHeader(record []string) bool {
	if len(record) != len(Header) {
		return false
	}
	for i := range record {
		if record[i] != Header[i] {
			return false
		}
	}
	return true
}

func headerError(name string, line int, reason string) error {
	return errors.Mark(errors.NewDataError(name, line, reason, ErrInvalidHeader), errors.ErrInvalidTrainingData)
}

func rowError(name string, line int, reason string) error {
	return errors.NewDataError(name, line, reason, errors.ErrInvalidTrainingData)
}

func parseError(name string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return rowError(name, pe.Line, pe.Err.Error())
	}
	return errors.Mark(errors.Wrapf(err, "read %s", name), errors.ErrInvalidTrainingData)
}
