// Package model defines shared data structures.
package model

import "time"

// Variant names one mini-game.
type Variant string

const (
	ReactionTime   Variant = "reaction-time"
	SequenceMemory Variant = "sequence-memory"
	AimTrainer     Variant = "aim-trainer"
	NumberMemory   Variant = "number-memory"
	VerbalMemory   Variant = "verbal-memory"
	ChimpTest      Variant = "chimp-test"
	VisualMemory   Variant = "visual-memory"
	SchulteTable   Variant = "schulte-table"
)

// Direction is the score polarity of a variant.
type Direction int

const (
	LowerIsBetter Direction = iota
	HigherIsBetter
)

func (d Direction) String() string {
	if d == HigherIsBetter {
		return "higher-is-better"
	}
	return "lower-is-better"
}

// AttemptRecord is one completed play.
type AttemptRecord struct {
	ID        string    `json:"id"`
	Variant   Variant   `json:"variant"`
	Score     float64   `json:"score"`
	Timestamp time.Time `json:"timestamp"`
	Context   string    `json:"context,omitempty"`
}

// Config holds resolved application settings.
type Config struct {
	DBPath         string
	FallbackLocale string
}

// HistoryConfig defines filters for the history output.
type HistoryConfig struct {
	Variant     Variant
	Context     string
	Last        int
	CurveWindow int
}
