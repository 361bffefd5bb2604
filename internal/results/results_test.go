package results

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/mindgym/internal/games"
	"github.com/verte-zerg/mindgym/internal/model"
	"github.com/verte-zerg/mindgym/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "mindgym.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

type flakyKV struct {
	data    map[string][]byte
	failSet bool
	sets    int
}

func (f *flakyKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *flakyKV) Set(_ context.Context, key string, value []byte) error {
	f.sets++
	if f.failSet {
		return errors.New("disk full")
	}
	if f.data == nil {
		f.data = map[string][]byte{}
	}
	f.data[key] = append([]byte(nil), value...)
	return nil
}

func TestBestScoreScenario(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	rs := New(ctx, st)

	rs.Record(ctx, model.ReactionTime, 250, "")
	rs.Record(ctx, model.ReactionTime, 180, "")
	rs.Record(ctx, model.ReactionTime, 300, "")
	rs.Record(ctx, model.NumberMemory, 7, "")
	rs.Record(ctx, model.NumberMemory, 12, "")
	rs.Record(ctx, model.VisualMemory, 9, "3x3")
	rs.Record(ctx, model.VisualMemory, 14, "5x5")

	cases := []struct {
		variant model.Variant
		scope   string
		want    float64
	}{
		{model.ReactionTime, "", 180},
		{model.NumberMemory, "", 12},
		{model.VisualMemory, "3x3", 9},
		{model.VisualMemory, "5x5", 14},
		{model.VisualMemory, "", 14},
	}
	for _, tc := range cases {
		got, ok := rs.Best(tc.variant, tc.scope)
		if !ok {
			t.Fatalf("%s/%q: expected a best score", tc.variant, tc.scope)
		}
		if got != tc.want {
			t.Fatalf("%s/%q: expected %v, got %v", tc.variant, tc.scope, tc.want, got)
		}
	}
}

func TestBestScoreAbsent(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	rs := New(ctx, st)

	if _, ok := rs.Best(model.ChimpTest, ""); ok {
		t.Fatalf("expected no best score on empty log")
	}
	rs.Record(ctx, model.SchulteTable, 21.5, "5x5")
	if _, ok := rs.Best(model.SchulteTable, "3x3"); ok {
		t.Fatalf("expected no best score for unmatched context")
	}
	if _, ok := rs.Best(model.ChimpTest, ""); ok {
		t.Fatalf("expected no best score for other variant")
	}
}

func TestContextScopeExcludesUntagged(t *testing.T) {
	kv := &flakyKV{}
	ctx := context.Background()
	rs := New(ctx, kv)

	rs.Record(ctx, model.SchulteTable, 10, "")
	rs.Record(ctx, model.SchulteTable, 30, "4x4")
	rs.Record(ctx, model.SchulteTable, 5, "5x5")

	got, ok := rs.Best(model.SchulteTable, "4x4")
	if !ok || got != 30 {
		t.Fatalf("expected 30 scoped to 4x4, got %v (ok=%v)", got, ok)
	}
	got, ok = rs.Best(model.SchulteTable, "")
	if !ok || got != 5 {
		t.Fatalf("expected 5 across contexts, got %v (ok=%v)", got, ok)
	}
}

func TestBestMatchesBruteForce(t *testing.T) {
	kv := &flakyKV{}
	ctx := context.Background()
	rs := New(ctx, kv)
	rnd := rand.New(rand.NewSource(7))

	all := games.All()
	contexts := []string{"", "3x3", "4x4"}
	type entry struct {
		variant model.Variant
		scope   string
		score   float64
	}
	var recorded []entry
	for i := 0; i < 400; i++ {
		info := all[rnd.Intn(len(all))]
		e := entry{
			variant: info.Variant,
			scope:   contexts[rnd.Intn(len(contexts))],
			score:   float64(rnd.Intn(1000)) / 4,
		}
		rs.Record(ctx, e.variant, e.score, e.scope)
		recorded = append(recorded, e)
	}

	for _, info := range all {
		for _, scope := range contexts {
			var want float64
			found := false
			for _, e := range recorded {
				if e.variant != info.Variant || (scope != "" && e.scope != scope) {
					continue
				}
				if !found {
					want, found = e.score, true
					continue
				}
				if info.Direction == model.HigherIsBetter && e.score > want {
					want = e.score
				}
				if info.Direction == model.LowerIsBetter && e.score < want {
					want = e.score
				}
			}
			got, ok := rs.Best(info.Variant, scope)
			if ok != found || got != want {
				t.Fatalf("%s/%q: expected %v (found=%v), got %v (ok=%v)", info.Variant, scope, want, found, got, ok)
			}
		}
	}
	if rs.Len() != len(recorded) {
		t.Fatalf("expected %d records, got %d", len(recorded), rs.Len())
	}
}

func TestReloadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mindgym.db")
	ctx := context.Background()

	first, err := store.Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	rs := New(ctx, first)
	rs.Record(ctx, model.ReactionTime, 212, "")
	rs.Record(ctx, model.AimTrainer, 480, "")
	rs.Record(ctx, model.VisualMemory, 9, "3x3")
	rs.Record(ctx, model.VisualMemory, 14, "5x5")
	rs.Record(ctx, model.VerbalMemory, 33, "")

	type key struct {
		variant model.Variant
		scope   string
	}
	before := map[key]float64{}
	for _, info := range games.All() {
		for _, scope := range []string{"", "3x3", "5x5"} {
			if v, ok := rs.Best(info.Variant, scope); ok {
				before[key{info.Variant, scope}] = v
			}
		}
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second, err := store.Open(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	t.Cleanup(func() {
		_ = second.Close()
	})
	reloaded := New(ctx, second)
	if reloaded.Len() != 5 {
		t.Fatalf("expected 5 records after reload, got %d", reloaded.Len())
	}
	after := map[key]float64{}
	for _, info := range games.All() {
		for _, scope := range []string{"", "3x3", "5x5"} {
			if v, ok := reloaded.Best(info.Variant, scope); ok {
				after[key{info.Variant, scope}] = v
			}
		}
	}
	if len(after) != len(before) {
		t.Fatalf("expected %d best scores, got %d", len(before), len(after))
	}
	for k, v := range before {
		if after[k] != v {
			t.Fatalf("%v: expected %v after reload, got %v", k, v, after[k])
		}
	}
}

func TestRecordPreservesOrderAndFields(t *testing.T) {
	kv := &flakyKV{}
	ctx := context.Background()
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rs := New(ctx, kv, WithClock(func() time.Time { return fixed }))

	a, err := rs.Record(ctx, model.ChimpTest, 9, "")
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	b, err := rs.Record(ctx, model.ChimpTest, 11, "")
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("expected unique ids, got %q and %q", a.ID, b.ID)
	}
	if !a.Timestamp.Equal(fixed) {
		t.Fatalf("unexpected timestamp %v", a.Timestamp)
	}
	attempts := rs.Attempts(model.ChimpTest, "")
	if len(attempts) != 2 || attempts[0].ID != a.ID || attempts[1].ID != b.ID {
		t.Fatalf("unexpected attempt order: %+v", attempts)
	}

	reloaded := New(ctx, kv)
	attempts = reloaded.Attempts(model.ChimpTest, "")
	if len(attempts) != 2 || attempts[0].ID != a.ID || !attempts[0].Timestamp.Equal(fixed) {
		t.Fatalf("unexpected reloaded attempts: %+v", attempts)
	}
}

func TestWriteFailureKeepsMemoryAndRetries(t *testing.T) {
	kv := &flakyKV{failSet: true}
	ctx := context.Background()
	rs := New(ctx, kv)

	rs.Record(ctx, model.ReactionTime, 240, "")
	if got, ok := rs.Best(model.ReactionTime, ""); !ok || got != 240 {
		t.Fatalf("expected in-memory record after failed write, got %v (ok=%v)", got, ok)
	}
	if _, ok := kv.data[LogKey]; ok {
		t.Fatalf("expected nothing persisted while writes fail")
	}

	kv.failSet = false
	rs.Record(ctx, model.ReactionTime, 260, "")
	reloaded := New(ctx, kv)
	if reloaded.Len() != 2 {
		t.Fatalf("expected both records persisted by the next write, got %d", reloaded.Len())
	}
	if kv.sets != 2 {
		t.Fatalf("expected one write per record, got %d", kv.sets)
	}
}

func TestCorruptLogLoadsEmpty(t *testing.T) {
	kv := &flakyKV{data: map[string][]byte{LogKey: []byte("{not json")}}
	ctx := context.Background()
	rs := New(ctx, kv)
	if rs.Len() != 0 {
		t.Fatalf("expected empty log, got %d records", rs.Len())
	}
	rs.Record(ctx, model.NumberMemory, 8, "")
	if got, ok := rs.Best(model.NumberMemory, ""); !ok || got != 8 {
		t.Fatalf("expected store usable after corrupt load, got %v (ok=%v)", got, ok)
	}
}

func TestNonFiniteScoresRejected(t *testing.T) {
	kv := &flakyKV{}
	ctx := context.Background()
	rs := New(ctx, kv)

	if _, err := rs.Record(ctx, model.ReactionTime, 250, ""); err != nil {
		t.Fatalf("record: %v", err)
	}
	for _, score := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := rs.Record(ctx, model.ReactionTime, score, ""); !errors.Is(err, ErrInvalidScore) {
			t.Fatalf("expected ErrInvalidScore for %v, got %v", score, err)
		}
	}
	if _, err := rs.Record(ctx, model.ReactionTime, 100, ""); err != nil {
		t.Fatalf("record: %v", err)
	}

	if got, ok := rs.Best(model.ReactionTime, ""); !ok || got != 100 {
		t.Fatalf("expected best 100, got %v (ok=%v)", got, ok)
	}
	reloaded := New(ctx, kv)
	if reloaded.Len() != rs.Len() || reloaded.Len() != 2 {
		t.Fatalf("expected 2 persisted records, got %d (in memory %d)", reloaded.Len(), rs.Len())
	}
}

func TestLeadingNonFiniteScoreDoesNotPinBest(t *testing.T) {
	kv := &flakyKV{}
	ctx := context.Background()
	rs := New(ctx, kv)

	if _, err := rs.Record(ctx, model.NumberMemory, math.NaN(), ""); err == nil {
		t.Fatalf("expected NaN to be rejected")
	}
	if _, err := rs.Record(ctx, model.NumberMemory, 7, ""); err != nil {
		t.Fatalf("record: %v", err)
	}
	if got, ok := rs.Best(model.NumberMemory, ""); !ok || got != 7 {
		t.Fatalf("expected best 7, got %v (ok=%v)", got, ok)
	}
}
