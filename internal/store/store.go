// Package store persists goals. The engine only sees the Store interface;
// the concrete implementation is sqlite via gorm. Tests substitute an
// in-memory fake.
package store

import "github.com/mkrylov/goalie/internal/models"

// Store is the persistence boundary the engine talks to.
type Store interface {
	// LoadAll returns every stored goal keyed by id.
	LoadAll() (map[int64]*models.Goal, error)

	// Save writes one goal, overwriting any prior state for its id.
	Save(goal *models.Goal) error

	// NextID reads the monotonic id counter without advancing it.
	NextID() (int64, error)

	// AdvanceID increments the id counter.
	AdvanceID() error

	// Close releases the underlying database.
	Close() error
}

// Compile-time check that *SQLite implements Store.
var _ Store = (*SQLite)(nil)
