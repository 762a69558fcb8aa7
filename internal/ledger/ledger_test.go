package ledger

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mkrylov/goalie/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func goalWith(id int64, desc string, spans ...[2]string) *models.Goal {
	g := &models.Goal{ID: id, Description: desc}
	for _, s := range spans {
		g.Progress = append(g.Progress, models.ProgressEntry{
			Start: dec(s[0]), End: dec(s[1]), Focus: dec("1"),
		})
	}
	return g
}

func TestMergeSimultaneousFoldsIdenticalSpans(t *testing.T) {
	goals := []*models.Goal{
		goalWith(2, "review code", [2]string{"1000", "1600"}),
		goalWith(1, "write docs", [2]string{"1000", "1600"}, [2]string{"2000", "2300"}),
	}
	sessions := MergeSimultaneous(goals, decimal.Zero)
	if len(sessions) != 2 {
		t.Fatalf("sessions: got %d, want 2", len(sessions))
	}
	if len(sessions[0].Entries) != 2 {
		t.Fatalf("first session entries: got %d, want 2", len(sessions[0].Entries))
	}
	// Equal start times fold in goal id order.
	if got := sessions[0].Description(); got != "write docs and review code" {
		t.Fatalf("description: got %q", got)
	}
	if len(sessions[1].Entries) != 1 || !sessions[1].Start.Equal(dec("2000")) {
		t.Fatalf("second session: got start %s with %d entries", sessions[1].Start, len(sessions[1].Entries))
	}
}

func TestMergeSimultaneousEveryEntryInExactlyOneSession(t *testing.T) {
	goals := []*models.Goal{
		goalWith(1, "a", [2]string{"100", "200"}, [2]string{"300", "400"}),
		goalWith(2, "b", [2]string{"100", "200"}, [2]string{"500", "600"}),
		goalWith(3, "c", [2]string{"300", "400"}),
	}
	sessions := MergeSimultaneous(goals, decimal.Zero)
	total := 0
	for _, s := range sessions {
		total += len(s.Entries)
	}
	if total != 5 {
		t.Fatalf("entries across sessions: got %d, want 5", total)
	}
	if len(sessions) != 3 {
		t.Fatalf("sessions: got %d, want 3", len(sessions))
	}
}

func TestMergeSimultaneousDropsEntriesAtOrBeforeSince(t *testing.T) {
	goals := []*models.Goal{
		goalWith(1, "a", [2]string{"100", "200"}, [2]string{"500", "700"}, [2]string{"800", "900"}),
	}
	sessions := MergeSimultaneous(goals, dec("500"))
	if len(sessions) != 1 {
		t.Fatalf("sessions: got %d, want 1", len(sessions))
	}
	if !sessions[0].Start.Equal(dec("800")) {
		t.Fatalf("session start: got %s, want 800", sessions[0].Start)
	}
}

func TestMergeSimultaneousSkipsStaleGoals(t *testing.T) {
	goals := []*models.Goal{
		goalWith(1, "stale", [2]string{"100", "200"}),
		goalWith(2, "fresh", [2]string{"100", "900"}),
	}
	// Goal 1's last update (200) is not after since, so even entries it might
	// contribute later are excluded wholesale.
	sessions := MergeSimultaneous(goals, dec("200"))
	if len(sessions) != 1 || sessions[0].Description() != "fresh" {
		t.Fatalf("got %d sessions", len(sessions))
	}
}

func TestMergeSimultaneousNonAdjacentEqualSpansStaySeparate(t *testing.T) {
	// Spans (100,500) and (100,300): same start, different ends. The (100,300)
	// pair folds; (100,500) opens its own session even though it sorts between.
	goals := []*models.Goal{
		goalWith(1, "a", [2]string{"100", "300"}),
		goalWith(2, "b", [2]string{"100", "500"}),
		goalWith(3, "c", [2]string{"100", "300"}),
	}
	sessions := MergeSimultaneous(goals, decimal.Zero)
	total := 0
	for _, s := range sessions {
		total += len(s.Entries)
	}
	if total != 3 {
		t.Fatalf("entries: got %d, want 3", total)
	}
}

func TestEntriesInPeriod(t *testing.T) {
	goals := []*models.Goal{
		goalWith(1, "a", [2]string{"100", "200"}, [2]string{"250", "400"}, [2]string{"390", "600"}),
		goalWith(2, "b", [2]string{"150", "350"}),
	}
	entries := EntriesInPeriod(goals, dec("100"), dec("400"))
	if len(entries) != 3 {
		t.Fatalf("entries: got %d, want 3", len(entries))
	}
	// Ascending by start; bounds are inclusive, straddlers excluded.
	wantStarts := []string{"100", "150", "250"}
	for i, e := range entries {
		if !e.Start.Equal(dec(wantStarts[i])) {
			t.Fatalf("entry %d start: got %s, want %s", i, e.Start, wantStarts[i])
		}
	}
}

func TestEntriesInPeriodEmpty(t *testing.T) {
	goals := []*models.Goal{goalWith(1, "a", [2]string{"100", "200"})}
	if got := EntriesInPeriod(goals, dec("300"), dec("400")); len(got) != 0 {
		t.Fatalf("entries: got %d, want 0", len(got))
	}
}
