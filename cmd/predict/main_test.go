package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeModel(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".model")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_Flag(t *testing.T) {
	modelPath := writeModel(t, "10,0.1")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-log-level", "error", "-mileage", "100", modelPath}, strings.NewReader(""), &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())
	assert.Equal(t, "price: 20\n", stdout.String())
}

func TestRun_Prompt(t *testing.T) {
	modelPath := writeModel(t, "10,0.1")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-log-level", "error", modelPath}, strings.NewReader("0\n"), &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())
	assert.Equal(t, "mileage: price: 10\n", stdout.String())
}

func TestRun_Failures(t *testing.T) {
	good := writeModel(t, "10,0.1")
	bad := writeModel(t, "ten,0.1")
	missing := filepath.Join(t.TempDir(), ".model")

	tests := []struct {
		name  string
		args  []string
		stdin string
		want  string
	}{
		{name: "missing model", args: []string{"-mileage", "1", missing}, want: "Model file not found.\n"},
		{name: "malformed model", args: []string{"-mileage", "1", bad}, want: "Invalid model.\n"},
		{name: "bad flag mileage", args: []string{"-mileage", "far", good}, want: "Invalid mileage.\n"},
		{name: "bad prompt mileage", args: []string{good}, stdin: "far\n", want: "mileage: Invalid mileage.\n"},
		{name: "empty stdin", args: []string{good}, stdin: "", want: "mileage: Invalid mileage.\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			args := append([]string{"-log-level", "error"}, tt.args...)
			code := run(context.Background(), args, strings.NewReader(tt.stdin), &stdout, &stderr)
			assert.Equal(t, exitFailure, code)
			assert.Equal(t, tt.want, stdout.String())
		})
	}
}

func TestRun_Usage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"a", "b"}, strings.NewReader(""), &stdout, &stderr)
	assert.Equal(t, exitUsage, code)
}
