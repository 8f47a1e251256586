package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/YuminosukeSato/linreg/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(data, []byte("km,price\n0,10\n100,20\n"), 0o644))
	modelPath := filepath.Join(dir, "car.model")
	plotPath := filepath.Join(dir, "fit.png")
	dbPath := filepath.Join(dir, "history.db")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{
		"-log-level", "error",
		"-plot", plotPath,
		"-history", dbPath,
		data, modelPath,
	}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())

	assert.True(t, strings.HasPrefix(stdout.String(), "precision: "))
	assert.True(t, strings.HasSuffix(stdout.String(), "%\n"))

	content, err := os.ReadFile(modelPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), ",")

	_, err = os.Stat(plotPath)
	assert.NoError(t, err)

	store, err := history.Open(dbPath)
	require.NoError(t, err)
	defer store.Close()
	runs, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestRun_Failures(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.csv")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-log-level", "error", missing, filepath.Join(dir, ".model")}, &stdout, &stderr)
	assert.Equal(t, exitFailure, code)
	assert.Equal(t, "Training data file '"+missing+"' not found.\n", stdout.String())
}

func TestRun_Usage(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no arguments", args: nil},
		{name: "too many arguments", args: []string{"a", "b", "c"}},
		{name: "unknown flag", args: []string{"-nope", "data.csv"}},
		{name: "bad warm start", args: []string{"-warm-start", "sometimes", "data.csv"}},
		{name: "bad learning rate", args: []string{"-learning-rate", "-1", "data.csv"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Equal(t, exitUsage, run(context.Background(), tt.args, &stdout, &stderr))
			assert.Empty(t, stdout.String())
		})
	}
}
