package locale

import (
	"context"
	"fmt"
	"os"
)

// KV is the durable storage the preference is written to.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

type subscriber struct {
	id int
	fn func(Locale)
}

// Selector holds the current locale and notifies subscribers on change.
type Selector struct {
	kv      KV
	current Locale
	subs    []subscriber
	nextID  int
}

// NewSelector loads the persisted locale. When none is stored, or the stored tag
// is not supported, the locale is derived from preferred with fallback as the last resort.
func NewSelector(ctx context.Context, kv KV, preferred []string, fallback Locale) *Selector {
	if !fallback.IsValid() {
		fallback = English
	}
	s := &Selector{kv: kv}
	if l, ok := s.loadPersisted(ctx); ok {
		s.current = l
		return s
	}
	s.current = Resolve(preferred, fallback)
	return s
}

func (s *Selector) loadPersisted(ctx context.Context) (Locale, bool) {
	data, ok, err := s.kv.Get(ctx, PreferenceKey)
	if err != nil {
		logErrf("failed to read locale preference: %v\n", err)
		return Locale{}, false
	}
	if !ok {
		return Locale{}, false
	}
	l, err := Parse(string(data))
	if err != nil {
		return Locale{}, false
	}
	return l, true
}

// Current returns the selected locale.
func (s *Selector) Current() Locale {
	return s.current
}

// Set selects l, persists it and notifies subscribers. A failed write is logged only.
func (s *Selector) Set(ctx context.Context, l Locale) {
	if !l.IsValid() {
		return
	}
	s.current = l
	if err := s.kv.Set(ctx, PreferenceKey, []byte(l.code)); err != nil {
		logErrf("failed to save locale preference: %v\n", err)
	}
	for _, sub := range append([]subscriber(nil), s.subs...) {
		sub.fn(l)
	}
}

// Subscribe registers fn to run after every Set. The returned func removes it.
func (s *Selector) Subscribe(fn func(Locale)) func() {
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
