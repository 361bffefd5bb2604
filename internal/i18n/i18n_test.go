package i18n

import (
	"testing"

	"github.com/verte-zerg/mindgym/internal/games"
	"github.com/verte-zerg/mindgym/internal/locale"
)

func TestTextTranslatesGameTitles(t *testing.T) {
	for _, info := range games.All() {
		en := Text(locale.English, info.TitleKey)
		if en != info.TitleKey {
			t.Fatalf("expected english title %q, got %q", info.TitleKey, en)
		}
		zh := Text(locale.SimplifiedChinese, info.TitleKey)
		if zh == info.TitleKey || zh == "" {
			t.Fatalf("missing zh-Hans title for %s", info.Variant)
		}
	}
}

func TestTextLabels(t *testing.T) {
	if got := Text(locale.SimplifiedChinese, KeyBest); got != "最佳" {
		t.Fatalf("unexpected zh-Hans label %q", got)
	}
	if got := Text(locale.English, KeyNoResults); got != "No results yet" {
		t.Fatalf("unexpected english label %q", got)
	}
}

func TestTextKeepsPercentVerbatim(t *testing.T) {
	for _, l := range locale.Supported() {
		for _, key := range []string{"100% focus", "%s %d %v", "%"} {
			if got := Text(l, key); got != key {
				t.Fatalf("%s: expected %q verbatim, got %q", l, key, got)
			}
		}
	}
}

func TestTranslateMatchesText(t *testing.T) {
	p := Printer(locale.SimplifiedChinese)
	for _, info := range games.All() {
		if got, want := Translate(p, info.TitleKey), Text(locale.SimplifiedChinese, info.TitleKey); got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
	}
}

func TestLanguageName(t *testing.T) {
	if LanguageName(locale.SimplifiedChinese) != "简体中文" {
		t.Fatalf("unexpected native name")
	}
}
