package model

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/linreg/pkg/errors"
)

// The model file is a single line "theta0,theta1". Values are written with
// the shortest representation that round-trips, and no trailing newline.
const fieldSeparator = ","

func formatParams(p Params) string {
	return strconv.FormatFloat(p.Theta0, 'g', -1, 64) + fieldSeparator + strconv.FormatFloat(p.Theta1, 'g', -1, 64)
}

// ParseParams parses the model file contents. Surrounding whitespace is
// ignored; anything other than exactly two finite floats is ErrMalformedModel.
func ParseParams(s string) (Params, error) {
	fields := strings.Split(strings.TrimSpace(s), fieldSeparator)
	if len(fields) != 2 {
		return Params{}, errors.Mark(
			errors.NewValueError("ParseParams", "expected 2 comma-separated fields, got "+strconv.Itoa(len(fields))),
			errors.ErrMalformedModel,
		)
	}

	var values [2]float64
	for i, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return Params{}, errors.Mark(errors.Wrapf(err, "field %d", i+1), errors.ErrMalformedModel)
		}
		values[i] = v
	}

	p := Params{Theta0: values[0], Theta1: values[1]}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// WriteParams writes p to w in the model file format.
func WriteParams(w io.Writer, p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if _, err := io.WriteString(w, formatParams(p)); err != nil {
		return errors.Wrap(err, "failed to write model")
	}
	return nil
}

// ReadParams reads a model from r.
func ReadParams(r io.Reader) (Params, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Params{}, errors.Wrap(err, "failed to read model")
	}
	return ParseParams(string(data))
}

// LoadParams reads the model file at path. A missing file is ErrMissingFile,
// an unreadable one ErrPermissionDenied.
func LoadParams(path string) (Params, error) {
	file, err := os.Open(path)
	if err != nil {
		return Params{}, classifyFileError(err, path)
	}
	defer file.Close()

	p, err := ReadParams(file)
	if err != nil {
		return Params{}, errors.Wrapf(err, "model file %s", path)
	}
	return p, nil
}

// LoadParamsOrDefault is LoadParams, except that a missing file yields
// DefaultParams. The boolean reports whether the file existed.
func LoadParamsOrDefault(path string) (Params, bool, error) {
	p, err := LoadParams(path)
	if errors.Is(err, errors.ErrMissingFile) {
		return DefaultParams, false, nil
	}
	if err != nil {
		return Params{}, false, err
	}
	return p, true, nil
}

// SaveParams atomically replaces the model file at path: the pair is written
// to a temporary file in the same directory which is then renamed over path.
func SaveParams(path string, p Params) (err error) {
	if err := p.Validate(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return classifyFileError(err, path)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = WriteParams(tmp, p); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "failed to flush model")
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return classifyFileError(err, path)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return classifyFileError(err, path)
	}
	return nil
}

func classifyFileError(err error, path string) error {
	switch {
	case os.IsNotExist(err):
		return errors.Mark(errors.Wrapf(err, "model file %s", path), errors.ErrMissingFile)
	case os.IsPermission(err):
		return errors.Mark(errors.Wrapf(err, "model file %s", path), errors.ErrPermissionDenied)
	default:
		return errors.Wrapf(err, "model file %s", path)
	}
}
