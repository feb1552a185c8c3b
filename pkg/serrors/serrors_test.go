package serrors_test

import (
	"errors"
	"fmt"
	"testing"

	"psychrometer/pkg/serrors"

	"github.com/stretchr/testify/require"
)

type customError struct{ msg string }

func (e customError) Error() string { return e.msg }

func TestDefaultKindsDistinct(t *testing.T) {
	kinds := []serrors.Kind{
		serrors.ErrNotFound,
		serrors.ErrUnauthorized,
		serrors.ErrForbidden,
		serrors.ErrBadRequest,
		serrors.ErrConflict,
		serrors.ErrInternal,
		serrors.ErrUnavailable,
	}
	seen := map[serrors.Kind]bool{}
	for i, k := range kinds {
		require.NotNil(t, k, "kind at index %d is nil", i)
		require.False(t, seen[k], "kind at index %d is duplicate: %v", i, k)
		seen[k] = true
	}
}

func TestErrorFormatting(t *testing.T) {
	base := errors.New("db down")

	e1 := serrors.With(serrors.ErrNotFound, "batch %d not found", 42)
	require.Equal(t, "batch 42 not found", e1.Error())

	e2 := serrors.Wrap(serrors.ErrNotFound, base, "loading batch")
	require.Equal(t, "loading batch: db down", e2.Error())

	e3 := serrors.KindOnly(serrors.ErrNotFound)
	require.Equal(t, "NOT_FOUND", e3.Error())
}

func TestIsMatchesKindAndWrapped(t *testing.T) {
	base := customError{"root cause"}
	e := serrors.Wrap(serrors.ErrNotFound, base, "reading")

	require.ErrorIs(t, e, serrors.ErrNotFound)
	require.ErrorIs(t, e, base)
	require.NotErrorIs(t, e, serrors.ErrUnauthorized)
}

func TestAsMatchesKindAndWrapped(t *testing.T) {
	base := &customError{"root cause"}
	e := serrors.Wrap(serrors.ErrNotFound, base, "reading")

	var k serrors.Kind
	require.ErrorAs(t, e, &k)
	require.Equal(t, serrors.ErrNotFound, k)

	var ce *customError
	require.ErrorAs(t, e, &ce)
	require.Equal(t, base, ce)
}

func TestAccessors(t *testing.T) {
	base := errors.New("boom")
	e := serrors.Wrap(serrors.ErrUnauthorized, base, "no token")
	require.Equal(t, serrors.ErrUnauthorized, e.Kind())
	require.Equal(t, "no token", e.Message())
	require.Equal(t, base, errors.Unwrap(e))
	require.Equal(t, "no token: boom", e.Error())
}

func TestKindOf(t *testing.T) {
	custom := serrors.NewKind("CUSTOM")

	tests := []struct {
		name string
		err  error
		want serrors.Kind
	}{
		{name: "nil", err: nil, want: nil},
		{name: "plain error", err: errors.New("boom"), want: nil},
		{name: "bare kind", err: serrors.ErrConflict, want: serrors.ErrConflict},
		{name: "semantic error", err: serrors.With(custom, "x"), want: custom},
		{
			name: "wrapped by fmt",
			err:  fmt.Errorf("outer: %w", serrors.With(serrors.ErrNotFound, "inner")),
			want: serrors.ErrNotFound,
		},
		{
			name: "outermost kind wins",
			err:  serrors.Wrap(serrors.ErrInternal, serrors.With(custom, "inner"), "outer"),
			want: serrors.ErrInternal,
		},
		{
			name: "kindless wrapper",
			err:  &serrors.Error{},
			want: nil,
		},
		{
			name: "joined",
			err:  errors.Join(errors.New("a"), serrors.KindOnly(custom)),
			want: custom,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, serrors.KindOf(tt.err))
		})
	}
}

func TestIsOneOf(t *testing.T) {
	err := fmt.Errorf("ctx: %w", serrors.With(serrors.ErrForbidden, "nope"))

	require.True(t, serrors.IsOneOf(err, serrors.ErrNotFound, serrors.ErrForbidden))
	require.False(t, serrors.IsOneOf(err, serrors.ErrNotFound))
	require.False(t, serrors.IsOneOf(err))
}
