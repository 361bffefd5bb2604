package stats

import (
	"github.com/verte-zerg/mindgym/internal/games"
	"github.com/verte-zerg/mindgym/internal/i18n"
	"github.com/verte-zerg/mindgym/internal/locale"
	"github.com/verte-zerg/mindgym/internal/model"
	"github.com/verte-zerg/mindgym/internal/results"
)

// BoardRow is one game on the score board.
type BoardRow struct {
	Variant  model.Variant
	Title    string
	Unit     string
	Best     float64
	HasBest  bool
	Attempts int
}

// BoardLabels holds the localized column labels.
type BoardLabels struct {
	Game      string
	Best      string
	Attempts  string
	NoResults string
}

// Labels returns the board labels for l.
func Labels(l locale.Locale) BoardLabels {
	p := i18n.Printer(l)
	return BoardLabels{
		Game:      i18n.Translate(p, i18n.KeyGame),
		Best:      i18n.Translate(p, i18n.KeyBest),
		Attempts:  i18n.Translate(p, i18n.KeyAttempts),
		NoResults: i18n.Translate(p, i18n.KeyNoResults),
	}
}

// BuildBoard collects the best score of every game, in catalog order.
func BuildBoard(rs *results.Store, l locale.Locale) []BoardRow {
	p := i18n.Printer(l)
	all := games.All()
	rows := make([]BoardRow, 0, len(all))
	for _, info := range all {
		best, ok := rs.Best(info.Variant, "")
		rows = append(rows, BoardRow{
			Variant:  info.Variant,
			Title:    i18n.Translate(p, info.TitleKey),
			Unit:     info.Unit,
			Best:     best,
			HasBest:  ok,
			Attempts: len(rs.Attempts(info.Variant, "")),
		})
	}
	return rows
}
