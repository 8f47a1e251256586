package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecover_WithPanic(t *testing.T) {
	run := func() (err error) {
		defer Recover(&err, "train")
		panic("index out of range")
	}

	err := run()
	require.Error(t, err)

	var panicErr *PanicError
	require.True(t, errors.As(err, &panicErr), "expected *PanicError, got %T", err)
	assert.Equal(t, "train", panicErr.Operation)
	assert.Equal(t, "index out of range", panicErr.PanicValue)
	assert.NotEmpty(t, panicErr.StackTrace)
	assert.Equal(t, "panic in train: index out of range", panicErr.Error())
}

func TestRecover_WithoutPanic(t *testing.T) {
	run := func() (err error) {
		defer Recover(&err, "train")
		return nil
	}

	assert.NoError(t, run())
}

func TestRecover_WithExistingError(t *testing.T) {
	originalErr := fmt.Errorf("original error")

	run := func() (err error) {
		defer Recover(&err, "predict")
		err = originalErr
		panic("panic after error")
	}

	err := run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic in predict")
	assert.Contains(t, err.Error(), "original error")
	assert.True(t, errors.Is(err, originalErr))
}

func TestSafeExecute(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		assert.NoError(t, SafeExecute("op", func() error { return nil }))
	})

	t.Run("function error is passed through", func(t *testing.T) {
		want := fmt.Errorf("function error")
		got := SafeExecute("op", func() error { return want })
		assert.Same(t, want, got)
	})

	t.Run("panic becomes PanicError", func(t *testing.T) {
		err := SafeExecute("op", func() error { panic("boom") })
		var panicErr *PanicError
		require.True(t, errors.As(err, &panicErr))
		assert.Equal(t, "boom", panicErr.PanicValue)
	})
}

func TestPanicError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("cause")

	withErr := NewPanicError("op", cause)
	assert.Same(t, cause, withErr.Unwrap())
	assert.True(t, errors.Is(withErr, cause))

	withString := NewPanicError("op", "text")
	assert.Nil(t, withString.Unwrap())
	assert.Contains(t, withString.String(), "Stack trace:")
}

func TestRecover_DifferentPanicTypes(t *testing.T) {
	testCases := []struct {
		name       string
		panicValue interface{}
		want       string
	}{
		{"string panic", "string panic", "string panic"},
		{"int panic", 42, "42"},
		{"error panic", fmt.Errorf("error as panic"), "error as panic"},
		{"struct panic", struct{ Msg string }{"struct message"}, "{struct message}"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			run := func() (err error) {
				defer Recover(&err, "TypeTest")
				panic(tc.panicValue)
			}

			var panicErr *PanicError
			require.True(t, errors.As(run(), &panicErr))
			assert.Equal(t, tc.want, fmt.Sprintf("%v", panicErr.PanicValue))
		})
	}
}

func BenchmarkSafeExecute_NoPanic(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = SafeExecute("BenchmarkOp", func() error { return nil })
	}
}
