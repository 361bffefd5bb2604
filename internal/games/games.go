// Package games holds the static catalog of mini-games.
package games

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/mindgym/internal/model"
)

// Info is the fixed metadata of a variant.
type Info struct {
	Variant   model.Variant
	Direction model.Direction
	Unit      string
	// TitleKey is the catalog key of the localized title.
	TitleKey string
	Contexts []string
}

var gridContexts = []string{"3x3", "4x4", "5x5"}

// catalog is ordered as on the home screen.
var catalog = []Info{
	{Variant: model.ReactionTime, Direction: model.LowerIsBetter, Unit: "ms", TitleKey: "Reaction Time"},
	{Variant: model.SequenceMemory, Direction: model.LowerIsBetter, Unit: "ms", TitleKey: "Sequence Memory"},
	{Variant: model.AimTrainer, Direction: model.LowerIsBetter, Unit: "ms", TitleKey: "Aim Trainer"},
	{Variant: model.NumberMemory, Direction: model.HigherIsBetter, Unit: "digits", TitleKey: "Number Memory"},
	{Variant: model.VerbalMemory, Direction: model.HigherIsBetter, Unit: "words", TitleKey: "Verbal Memory"},
	{Variant: model.ChimpTest, Direction: model.HigherIsBetter, Unit: "numbers", TitleKey: "Chimp Test"},
	{Variant: model.VisualMemory, Direction: model.HigherIsBetter, Unit: "level", TitleKey: "Visual Memory", Contexts: gridContexts},
	{Variant: model.SchulteTable, Direction: model.LowerIsBetter, Unit: "s", TitleKey: "Schulte Table", Contexts: gridContexts},
}

var byVariant = func() map[model.Variant]Info {
	m := make(map[model.Variant]Info, len(catalog))
	for _, info := range catalog {
		m[info.Variant] = info
	}
	return m
}()

// All returns every variant's metadata in display order.
func All() []Info {
	out := make([]Info, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns metadata for a variant.
func Lookup(v model.Variant) (Info, bool) {
	info, ok := byVariant[v]
	return info, ok
}

// DirectionOf returns the score polarity of a variant. Unknown variants rank lower-is-better.
func DirectionOf(v model.Variant) model.Direction {
	return byVariant[v].Direction
}

// Better reports whether score a beats score b for the variant.
func Better(v model.Variant, a, b float64) bool {
	if DirectionOf(v) == model.HigherIsBetter {
		return a > b
	}
	return a < b
}

// Parse converts a CLI tag into a variant.
func Parse(tag string) (model.Variant, error) {
	v := model.Variant(strings.TrimSpace(strings.ToLower(tag)))
	if _, ok := byVariant[v]; ok {
		return v, nil
	}
	names := make([]string, len(catalog))
	for i, info := range catalog {
		names[i] = string(info.Variant)
	}
	return "", fmt.Errorf("unknown game %q (available: %s)", tag, strings.Join(names, ", "))
}

// ValidContext checks a context tag against the variant's known contexts.
// Variants without declared contexts accept any tag.
func ValidContext(v model.Variant, context string) error {
	info, ok := byVariant[v]
	if !ok || context == "" || len(info.Contexts) == 0 {
		return nil
	}
	for _, c := range info.Contexts {
		if c == context {
			return nil
		}
	}
	return fmt.Errorf("unknown context %q for %s (available: %s)", context, v, strings.Join(info.Contexts, ", "))
}
