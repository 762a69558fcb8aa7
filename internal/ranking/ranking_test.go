package ranking

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mkrylov/goalie/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func trackedGoal(id int64, spans ...[2]string) *models.Goal {
	g := &models.Goal{ID: id}
	for _, s := range spans {
		g.Progress = append(g.Progress, models.ProgressEntry{
			Start: dec(s[0]), End: dec(s[1]), Focus: dec("1"),
		})
	}
	return g
}

func ids(goals []*models.Goal) []int64 {
	out := make([]int64, len(goals))
	for i, g := range goals {
		out[i] = g.ID
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRecentOrdersByLastUpdateDescending(t *testing.T) {
	goals := []*models.Goal{
		trackedGoal(1, [2]string{"100", "200"}),
		trackedGoal(2, [2]string{"100", "900"}),
		trackedGoal(3), // never worked, sorts last
		trackedGoal(4, [2]string{"100", "500"}),
	}
	got := ids(Recent(goals, 10))
	if !equalIDs(got, []int64{2, 4, 1, 3}) {
		t.Fatalf("Recent: got %v", got)
	}
}

func TestRecentTiesKeepInputOrder(t *testing.T) {
	goals := []*models.Goal{
		trackedGoal(7, [2]string{"100", "500"}),
		trackedGoal(3, [2]string{"200", "500"}),
		trackedGoal(9, [2]string{"100", "400"}),
	}
	got := ids(Recent(goals, 10))
	if !equalIDs(got, []int64{7, 3, 9}) {
		t.Fatalf("Recent ties: got %v", got)
	}
}

func TestRecentLimit(t *testing.T) {
	goals := []*models.Goal{
		trackedGoal(1, [2]string{"0", "100"}),
		trackedGoal(2, [2]string{"0", "300"}),
		trackedGoal(3, [2]string{"0", "200"}),
	}
	got := ids(Recent(goals, 2))
	if !equalIDs(got, []int64{2, 3}) {
		t.Fatalf("Recent limit: got %v", got)
	}
}

func TestFrequentFiltersWindowAndOrdersByEffort(t *testing.T) {
	now := dec("10000")
	window := dec("1000")
	goals := []*models.Goal{
		trackedGoal(1, [2]string{"9100", "9200"}), // 100s
		trackedGoal(2, [2]string{"9100", "9700"}), // 600s
		trackedGoal(3, [2]string{"100", "200"}),   // outside window
		trackedGoal(4, [2]string{"9500", "9800"}), // 300s
	}
	got := ids(Frequent(goals, 10, window, now))
	if !equalIDs(got, []int64{2, 4, 1}) {
		t.Fatalf("Frequent: got %v", got)
	}
}

func TestFrequentWeighsFocus(t *testing.T) {
	now := dec("10000")
	short := trackedGoal(1, [2]string{"9000", "9200"})
	short.Progress[0].Focus = dec("4") // 200s at focus 4 beats 600s at focus 1
	long := trackedGoal(2, [2]string{"9000", "9600"})
	got := ids(Frequent([]*models.Goal{long, short}, 10, dec("2000"), now))
	if !equalIDs(got, []int64{1, 2}) {
		t.Fatalf("Frequent focus weighting: got %v", got)
	}
}

func TestOptimalOrdersByValueRate(t *testing.T) {
	estimate := func(id int64, value, minutes string) *models.Goal {
		return &models.Goal{
			ID:              id,
			ValueComponents: map[string]models.Range{"default": models.PointRange(dec(value))},
			TimeComponents:  map[string]models.Range{"default": models.PointRange(dec(minutes))},
		}
	}
	goals := []*models.Goal{
		estimate(1, "100", "60"), // rate 1.67
		estimate(2, "50", "10"),  // rate 5
		&models.Goal{ID: 3, ValueComponents: map[string]models.Range{"default": models.PointRange(dec("999"))}}, // no rate
		estimate(4, "10", "5"), // rate 2
	}
	got := ids(Optimal(goals, 10))
	if !equalIDs(got, []int64{2, 4, 1, 3}) {
		t.Fatalf("Optimal: got %v", got)
	}
}

func TestOptimalLimit(t *testing.T) {
	goals := []*models.Goal{
		{ID: 1, TimeComponents: map[string]models.Range{"default": models.PointRange(dec("10"))}},
		{ID: 2, TimeComponents: map[string]models.Range{"default": models.PointRange(dec("10"))}},
	}
	if got := Optimal(goals, 1); len(got) != 1 {
		t.Fatalf("Optimal limit: got %d goals", len(got))
	}
}
