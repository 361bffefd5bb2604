// Package stats contains score summaries and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/mindgym/internal/model"
)

const sparkChars = " .:-=+*#%@"

// FormatScore renders a score with its unit.
func FormatScore(score float64, unit string) string {
	value := strconv.FormatFloat(score, 'f', -1, 64)
	if score != math.Trunc(score) {
		value = strconv.FormatFloat(score, 'f', 2, 64)
	}
	if unit == "" {
		return value
	}
	return value + " " + unit
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderBoard prints one line per game with its best score.
func RenderBoard(w io.Writer, labels BoardLabels, rows []BoardRow) error {
	headers := []string{labels.Game, labels.Best, labels.Attempts}
	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		best := labels.NoResults
		if r.HasBest {
			best = FormatScore(r.Best, r.Unit)
		}
		tableRows = append(tableRows, []string{r.Title, best, strconv.Itoa(r.Attempts)})
	}
	for _, line := range formatTable(headers, tableRows, map[int]bool{2: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderHistory prints the attempts of one game and a trend line of their scores.
func RenderHistory(w io.Writer, attempts []model.AttemptRecord, unit string, window, totalWidth int) error {
	if len(attempts) == 0 {
		_, err := fmt.Fprintln(w, "No attempts found.")
		return err
	}
	headers := []string{"#", "When", "Score", "Context"}
	rows := make([][]string, 0, len(attempts))
	scores := make([]float64, len(attempts))
	for i, a := range attempts {
		scores[i] = a.Score
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			a.Timestamp.Local().Format(time.DateTime),
			FormatScore(a.Score, unit),
			a.Context,
		})
	}
	for _, line := range formatTable(headers, rows, map[int]bool{0: true, 2: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if len(scores) < 2 {
		return nil
	}
	trend := MovingAverage(scores, window)
	const trendLabel = "Trend "
	if limit := totalWidth - len(trendLabel); totalWidth > 0 && limit > 0 && len(trend) > limit {
		trend = trend[len(trend)-limit:]
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, trendLabel+Sparkline(trend))
	return err
}
