package model

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/YuminosukeSato/linreg/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParams(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Params
		wantErr bool
	}{
		{name: "simple", input: "1234.5,-0.0213", want: Params{Theta0: 1234.5, Theta1: -0.0213}},
		{name: "trailing newline", input: "8499.599,-0.0214\n", want: Params{Theta0: 8499.599, Theta1: -0.0214}},
		{name: "spaces around fields", input: " 1 , 2 ", want: Params{Theta0: 1, Theta1: 2}},
		{name: "defaults", input: "0,0", want: Params{}},
		{name: "exponent", input: "1e3,-2.5E-4", want: Params{Theta0: 1000, Theta1: -0.00025}},
		{name: "empty", input: "", wantErr: true},
		{name: "one field", input: "42", wantErr: true},
		{name: "three fields", input: "1,2,3", wantErr: true},
		{name: "non numeric", input: "a,b", wantErr: true},
		{name: "nan", input: "NaN,1", wantErr: true},
		{name: "inf", input: "1,+Inf", wantErr: true},
		{name: "semicolon", input: "1;2", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseParams(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, errors.ErrMalformedModel), "want ErrMalformedModel, got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	cases := []Params{
		{},
		{Theta0: 8499.599649933216, Theta1: -0.021448963486702846},
		{Theta0: -1e-300, Theta1: 1e300},
		{Theta0: math.Pi, Theta1: -math.E},
	}

	for _, want := range cases {
		var buf bytes.Buffer
		require.NoError(t, WriteParams(&buf, want))
		assert.False(t, strings.HasSuffix(buf.String(), "\n"))
		assert.Equal(t, 1, strings.Count(buf.String(), ","))

		got, err := ReadParams(&buf)
		require.NoError(t, err)
		assert.Equal(t, want, got, "round trip must be exact")
	}
}

func TestWriteParams_RejectsNonFinite(t *testing.T) {
	var buf bytes.Buffer
	err := WriteParams(&buf, Params{Theta0: math.NaN()})
	assert.True(t, errors.Is(err, errors.ErrMalformedModel))
	assert.Zero(t, buf.Len())
}

func TestSaveAndLoadParams(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".model")
	want := Params{Theta0: 10, Theta1: 0.1}

	require.NoError(t, SaveParams(path, want))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "10,0.1", string(raw))

	got, err := LoadParams(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// overwrite leaves exactly one file behind
	require.NoError(t, SaveParams(path, Params{Theta0: 1, Theta1: 2}))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLoadParams_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent")

	_, err := LoadParams(path)
	assert.True(t, errors.Is(err, errors.ErrMissingFile))

	p, existed, err := LoadParamsOrDefault(path)
	require.NoError(t, err)
	assert.False(t, existed)
	assert.Equal(t, DefaultParams, p)
}

func TestLoadParamsOrDefault_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".model")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))

	_, existed, err := LoadParamsOrDefault(path)
	assert.False(t, existed)
	assert.True(t, errors.Is(err, errors.ErrMalformedModel))
}

func TestLoadParams_PermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	path := filepath.Join(t.TempDir(), ".model")
	require.NoError(t, os.WriteFile(path, []byte("1,2"), 0o000))

	_, err := LoadParams(path)
	assert.True(t, errors.Is(err, errors.ErrPermissionDenied))
}

func TestStateManager(t *testing.T) {
	s := NewStateManager()
	assert.False(t, s.IsFitted())

	err := s.RequireFitted("GradientDescent", "Predict")
	var notFitted *errors.NotFittedError
	require.True(t, errors.As(err, &notFitted))
	assert.Equal(t, "Predict", notFitted.Method)

	s.SetFitted(24)
	assert.True(t, s.IsFitted())
	assert.Equal(t, 24, s.NSamples())
	assert.NoError(t, s.RequireFitted("GradientDescent", "Predict"))

	s.Reset()
	assert.False(t, s.IsFitted())
	assert.Zero(t, s.NSamples())
}
