package commands

import (
	"path/filepath"
	"testing"

	"github.com/mkrylov/goalie/internal/clock"
	"github.com/mkrylov/goalie/internal/models"
	"github.com/mkrylov/goalie/internal/store"
)

// Re-deriving the previous session after a goals reload must bind its entries
// to the freshly loaded goal objects, not the ones from the discarded map,
// so a later undo mutates what subsequent commands see.
func TestLastSessionBindsToReloadedGoals(t *testing.T) {
	now := dec("100000")
	st, err := store.Open(filepath.Join(t.TempDir(), "goalie.db"), clock.Fixed{Instant: now})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer st.Close()

	goal := &models.Goal{ID: 1, Description: "write. finish the novel"}
	goal.AddTime(dec("95000"), dec("96000"), dec("1"), "", false, now)
	if err := st.Save(goal); err != nil {
		t.Fatalf("Save: %v", err)
	}

	first, err := st.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	reloaded, err := st.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if first[1] == reloaded[1] {
		t.Fatal("reload should produce distinct goal objects")
	}

	prev := lastSession(goalSlice(reloaded), now)
	if prev == nil || len(prev.Entries) != 1 {
		t.Fatalf("lastSession: got %+v", prev)
	}
	if prev.Entries[0].Goal != reloaded[1] {
		t.Fatal("session entry bound to a stale goal object")
	}
}
