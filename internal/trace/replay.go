package trace

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrymomot/lrucache/internal/lrucache"
	"github.com/dmitrymomot/lrucache/pkg/logger"
)

// Token is the identity handle a name is interned to. Two tokens with the
// same name never exist within one replay.
type Token struct {
	name string
}

func (t *Token) String() string {
	if t == nil {
		return ""
	}
	return t.name
}

// Snapshot is the observable state of a cache.
type Snapshot struct {
	Keys     []string
	Size     int
	Capacity int
}

// Front returns the least recently used key name, "" when empty.
func (s Snapshot) Front() string {
	if len(s.Keys) == 0 {
		return ""
	}
	return s.Keys[0]
}

// Back returns the most recently used key name, "" when empty.
func (s Snapshot) Back() string {
	if len(s.Keys) == 0 {
		return ""
	}
	return s.Keys[len(s.Keys)-1]
}

// Result is the outcome of a replay.
type Result struct {
	Cache *lrucache.Cache[*Token, *Token]
	Name  string
	Final Snapshot
	Steps int
}

// Option configures Run.
type Option func(*runOptions)

type runOptions struct {
	logger   *slog.Logger
	capacity int
}

// WithLogger sets the logger for replay and cache events.
func WithLogger(l *slog.Logger) Option {
	return func(o *runOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithCapacity overrides the scenario capacity. Negative keeps the scenario value.
func WithCapacity(n int) Option {
	return func(o *runOptions) {
		o.capacity = n
	}
}

// Run replays sc against a fresh cache and stops at the first failed
// expectation, cache error or context cancellation. The returned Result is
// non-nil even on error and describes the state reached.
func Run(ctx context.Context, sc Scenario, opts ...Option) (*Result, error) {
	o := &runOptions{logger: logger.NewNope(), capacity: -1}
	for _, opt := range opts {
		opt(o)
	}

	capacity := sc.Capacity
	if o.capacity >= 0 {
		capacity = o.capacity
	}

	r := &replayer{
		cache:  lrucache.New[*Token, *Token](lrucache.WithCapacity(capacity), lrucache.WithLogger(o.logger)),
		tokens: make(map[string]*Token),
	}
	res := &Result{Cache: r.cache, Name: sc.Name}

	ctx = logger.WithAttrs(ctx, slog.String("scenario", sc.Name))
	o.logger.DebugContext(ctx, "trace: replay started",
		slog.Int("capacity", capacity),
		slog.Int("steps", len(sc.Steps)),
	)

	var err error
	for i, st := range sc.Steps {
		if err = ctx.Err(); err != nil {
			break
		}
		if err = r.step(i, st); err != nil {
			break
		}
		res.Steps++
	}

	res.Final = r.snapshot()
	if err != nil {
		o.logger.WarnContext(ctx, "trace: replay failed",
			slog.Int("step", res.Steps),
			slog.String("error", err.Error()),
		)
		return res, err
	}

	o.logger.DebugContext(ctx, "trace: replay finished", slog.Int("size", res.Final.Size))
	return res, nil
}

type replayer struct {
	cache  *lrucache.Cache[*Token, *Token]
	tokens map[string]*Token
}

func (r *replayer) token(name string) *Token {
	if t, ok := r.tokens[name]; ok {
		return t
	}
	t := &Token{name: name}
	r.tokens[name] = t
	return t
}

// outcome holds what an operation returned, for matching against Expect.
type outcome struct {
	value   *Token
	evicted int
	found   bool
}

func (r *replayer) step(i int, st Step) error {
	var out outcome

	switch st.Op {
	case OpPut:
		if err := r.cache.Put(r.token(st.Key), r.token(st.Value)); err != nil {
			return fmt.Errorf("trace: step %d: %w", i, err)
		}
	case OpGet:
		out.value, out.found = r.cache.Get(r.token(st.Key))
	case OpPeek:
		out.value, out.found = r.cache.Peek(r.token(st.Key))
	case OpRemove:
		out.found = r.cache.Remove(r.token(st.Key))
	case OpResize:
		out.evicted = r.cache.Resize(st.Capacity)
	case OpFree:
		r.cache.Free()
	case OpCheck:
	default:
		return fmt.Errorf("%w: step %d: %q", ErrUnknownOp, i, st.Op)
	}

	if st.Expect == nil {
		return nil
	}
	return r.verify(i, st, out)
}

func (r *replayer) verify(i int, st Step, out outcome) error {
	mismatch := func(field, want, got string) error {
		return &MismatchError{Step: i, Op: st.Op, Field: field, Want: want, Got: got}
	}

	ex := st.Expect
	if ex.Value != nil {
		// Identity: the returned token must be the one interned for the name.
		want, ok := r.tokens[*ex.Value]
		if !out.found || !ok || out.value != want {
			return mismatch("value", *ex.Value, describe(out))
		}
	}
	if ex.Found != nil && *ex.Found != out.found {
		return mismatch("found", strconv.FormatBool(*ex.Found), strconv.FormatBool(out.found))
	}
	if ex.Evicted != nil && *ex.Evicted != out.evicted {
		return mismatch("evicted", strconv.Itoa(*ex.Evicted), strconv.Itoa(out.evicted))
	}

	snap := r.snapshot()
	if ex.Size != nil && *ex.Size != snap.Size {
		return mismatch("size", strconv.Itoa(*ex.Size), strconv.Itoa(snap.Size))
	}
	if ex.Front != nil && *ex.Front != snap.Front() {
		return mismatch("front", quote(*ex.Front), quote(snap.Front()))
	}
	if ex.Back != nil && *ex.Back != snap.Back() {
		return mismatch("back", quote(*ex.Back), quote(snap.Back()))
	}
	if ex.Keys != nil && !slices.Equal(*ex.Keys, snap.Keys) {
		return mismatch("keys", "["+strings.Join(*ex.Keys, " ")+"]", "["+strings.Join(snap.Keys, " ")+"]")
	}
	return nil
}

func (r *replayer) snapshot() Snapshot {
	keys := make([]string, 0, r.cache.Size())
	for _, k := range r.cache.Keys() {
		keys = append(keys, k.String())
	}
	return Snapshot{Keys: keys, Size: r.cache.Size(), Capacity: r.cache.Capacity()}
}

func describe(out outcome) string {
	if !out.found {
		return "miss"
	}
	return out.value.String()
}

func quote(s string) string {
	if s == "" {
		return "<empty>"
	}
	return s
}
