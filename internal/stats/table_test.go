package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Game", "Best", "Attempts"}
	rows := [][]string{
		{"Chimp Test", "12 numbers", "4"},
		{"Aim Trainer", "480 ms", "12"},
	}
	rightAlign := map[int]bool{2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Game         Best        Attempts" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "Chimp Test   12 numbers         4" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "Aim Trainer  480 ms            12" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	lines := formatTable([]string{"Game", "Best"}, [][]string{{"反应时间", "180 ms"}}, nil)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "Game      Best" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "反应时间  180 ms" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
}
