package trace_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lrucache/internal/lrucache"
	"github.com/dmitrymomot/lrucache/internal/trace"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("decodes steps and expectations", func(t *testing.T) {
		t.Parallel()

		sc, err := trace.Load(strings.NewReader(`
name: small
capacity: 3
steps:
  - {op: put, key: A, value: X}
  - {op: get, key: A, expect: {value: X, found: true}}
  - {op: check, expect: {keys: [A]}}
`))
		require.NoError(t, err)

		value, found, keys := "X", true, []string{"A"}
		want := trace.Scenario{
			Name:     "small",
			Capacity: 3,
			Steps: []trace.Step{
				{Op: trace.OpPut, Key: "A", Value: "X"},
				{Op: trace.OpGet, Key: "A", Expect: &trace.Expect{Value: &value, Found: &found}},
				{Op: trace.OpCheck, Expect: &trace.Expect{Keys: &keys}},
			},
		}
		if diff := cmp.Diff(want, sc); diff != "" {
			t.Fatalf("scenario mismatch (-want +got):\n%s", diff)
		}
	})

	tests := []struct {
		name  string
		input string
		err   error
	}{
		{"unknown field", "name: x\nsteps:\n  - {op: put, key: A, value: X, ttl: 3}\n", trace.ErrDecode},
		{"not yaml", "steps: [", trace.ErrDecode},
		{"empty input", "", trace.ErrDecode},
		{"unknown op", "steps:\n  - {op: touch, key: A}\n", trace.ErrUnknownOp},
		{"put without value", "steps:\n  - {op: put, key: A}\n", trace.ErrInvalidStep},
		{"get without key", "steps:\n  - {op: get}\n", trace.ErrInvalidStep},
		{"negative resize", "steps:\n  - {op: resize, capacity: -1}\n", trace.ErrInvalidStep},
		{"negative capacity", "capacity: -2\nsteps: []\n", trace.ErrInvalidStep},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := trace.Load(strings.NewReader(tt.input))
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads testdata", func(t *testing.T) {
		t.Parallel()

		sc, err := trace.LoadFile("testdata/eviction.yaml")
		require.NoError(t, err)
		require.Equal(t, "eviction", sc.Name)
		require.Equal(t, 2, sc.Capacity)
		require.Len(t, sc.Steps, 8)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := trace.LoadFile("testdata/nope.yaml")
		require.Error(t, err)
	})
}

func TestRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		file  string
		final trace.Snapshot
		steps int
	}{
		{"testdata/recency.yaml", trace.Snapshot{Keys: []string{"C", "A", "B"}, Size: 3}, 7},
		{"testdata/eviction.yaml", trace.Snapshot{Keys: []string{}, Size: 0, Capacity: 1}, 8},
		{"testdata/free.yaml", trace.Snapshot{Keys: []string{"K"}, Size: 1}, 6},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			t.Parallel()

			sc, err := trace.LoadFile(tt.file)
			require.NoError(t, err)

			res, err := trace.Run(context.Background(), sc)
			require.NoError(t, err)
			require.Equal(t, tt.steps, res.Steps)
			if diff := cmp.Diff(tt.final, res.Final); diff != "" {
				t.Fatalf("final snapshot mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRun_Mismatch(t *testing.T) {
	t.Parallel()

	sc, err := trace.LoadFile("testdata/mismatch.yaml")
	require.NoError(t, err)

	res, err := trace.Run(context.Background(), sc)
	require.ErrorIs(t, err, trace.ErrMismatch)

	var mm *trace.MismatchError
	require.ErrorAs(t, err, &mm)
	require.Equal(t, 2, mm.Step)
	require.Equal(t, "front", mm.Field)
	require.Equal(t, "B", mm.Want)
	require.Equal(t, "A", mm.Got)

	require.Equal(t, 2, res.Steps)
	require.Equal(t, []string{"A", "B"}, res.Final.Keys)
}

func TestRun_Identity(t *testing.T) {
	t.Parallel()

	// Values are compared by token identity, so a key stored as its own
	// value must not satisfy an expectation naming another token.
	sc := trace.Scenario{Steps: []trace.Step{
		{Op: trace.OpPut, Key: "A", Value: "A"},
		{Op: trace.OpPut, Key: "B", Value: "X"},
		{Op: trace.OpGet, Key: "A", Expect: &trace.Expect{Value: ptr("X")}},
	}}

	_, err := trace.Run(context.Background(), sc)

	var mm *trace.MismatchError
	require.ErrorAs(t, err, &mm)
	require.Equal(t, "value", mm.Field)
	require.Equal(t, "A", mm.Got)
}

func TestRun_Options(t *testing.T) {
	t.Parallel()

	t.Run("capacity override", func(t *testing.T) {
		t.Parallel()

		sc, err := trace.LoadFile("testdata/recency.yaml")
		require.NoError(t, err)

		res, err := trace.Run(context.Background(), sc, trace.WithCapacity(1))
		require.Error(t, err)
		require.ErrorIs(t, err, trace.ErrMismatch)
		require.Equal(t, 1, res.Final.Capacity)
		require.Equal(t, lrucache.Stats{Evictions: 1, Entries: 1}, res.Cache.Stats())
	})

	t.Run("logs replay events", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

		sc := trace.Scenario{Name: "logged", Steps: []trace.Step{{Op: trace.OpCheck}}}
		_, err := trace.Run(context.Background(), sc, trace.WithLogger(log))
		require.NoError(t, err)

		require.Contains(t, buf.String(), "trace: replay finished")
	})

	t.Run("stops on cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		sc := trace.Scenario{Steps: []trace.Step{{Op: trace.OpPut, Key: "A", Value: "X"}}}
		res, err := trace.Run(ctx, sc)
		require.ErrorIs(t, err, context.Canceled)
		require.Equal(t, 0, res.Steps)
	})
}

func ptr[T any](v T) *T { return &v }
