package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mkrylov/goalie/internal/apperrors"
	"github.com/mkrylov/goalie/internal/clock"
	"github.com/mkrylov/goalie/internal/models"
)

// goalRecord is the stored shape of a goal. Structured sub-documents are kept
// as JSON columns decoded through explicit record types: every field is
// named, absent fields get defaults, unknown fields are rejected.
type goalRecord struct {
	ID          int64 `gorm:"primarykey"`
	Description string
	Thoughts    string
	Tags        string
	ValueComps  string
	CostComps   string
	TimeComps   string
	Progress    string
	CreatedAt   string
	LastSavedAt string
	CompletedAt *string
	Requires    string
}

func (goalRecord) TableName() string { return "goals" }

// counterRecord is the single-row monotonic id counter.
type counterRecord struct {
	ID     int64 `gorm:"primarykey"`
	NextID int64
}

func (counterRecord) TableName() string { return "counter" }

// rangeDoc is the stored [low, high] estimate.
type rangeDoc struct {
	Low  string `json:"low"`
	High string `json:"high"`
}

// progressDoc is the stored shape of one progress entry. Focus and notes were
// added after the earliest logs, so both default when absent.
type progressDoc struct {
	Start string  `json:"start"`
	End   string  `json:"end"`
	Focus *string `json:"focus"`
	Notes *string `json:"notes"`
}

// SQLite stores goals in a sqlite database via gorm.
type SQLite struct {
	db  *gorm.DB
	clk clock.Clock
}

// Open connects to the database at path, creating directories and schema as
// needed.
func Open(path string, clk clock.Clock) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("%w: create data directory: %v", apperrors.ErrPersistence, err)
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", apperrors.ErrPersistence, path, err)
	}
	if err := db.AutoMigrate(&goalRecord{}, &counterRecord{}); err != nil {
		return nil, fmt.Errorf("%w: migrate schema: %v", apperrors.ErrPersistence, err)
	}
	return &SQLite{db: db, clk: clk}, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// LoadAll reads every stored goal.
func (s *SQLite) LoadAll() (map[int64]*models.Goal, error) {
	var records []goalRecord
	if err := s.db.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("%w: load goals: %v", apperrors.ErrPersistence, err)
	}
	goals := make(map[int64]*models.Goal, len(records))
	for _, rec := range records {
		goal, err := decodeGoal(rec)
		if err != nil {
			return nil, err
		}
		goals[goal.ID] = goal
	}
	return goals, nil
}

// Save writes one goal, stamping its LastSavedAt.
func (s *SQLite) Save(goal *models.Goal) error {
	goal.LastSavedAt = s.clk.Now()
	rec, err := encodeGoal(goal)
	if err != nil {
		return err
	}
	if err := s.db.Save(&rec).Error; err != nil {
		return fmt.Errorf("%w: save goal #%d: %v", apperrors.ErrPersistence, goal.ID, err)
	}
	return nil
}

// NextID reads the id counter, seeding it from the stored goals on first use.
func (s *SQLite) NextID() (int64, error) {
	var counter counterRecord
	err := s.db.First(&counter, 1).Error
	if err == nil {
		return counter.NextID, nil
	}
	var maxID int64
	row := s.db.Model(&goalRecord{}).Select("COALESCE(MAX(id), 0)").Row()
	if err := row.Scan(&maxID); err != nil {
		return 0, fmt.Errorf("%w: seed id counter: %v", apperrors.ErrPersistence, err)
	}
	counter = counterRecord{ID: 1, NextID: maxID + 1}
	if err := s.db.Create(&counter).Error; err != nil {
		return 0, fmt.Errorf("%w: seed id counter: %v", apperrors.ErrPersistence, err)
	}
	return counter.NextID, nil
}

// AdvanceID increments the id counter.
func (s *SQLite) AdvanceID() error {
	next, err := s.NextID()
	if err != nil {
		return err
	}
	rec := counterRecord{ID: 1, NextID: next + 1}
	if err := s.db.Save(&rec).Error; err != nil {
		return fmt.Errorf("%w: advance id counter: %v", apperrors.ErrPersistence, err)
	}
	return nil
}

func encodeGoal(goal *models.Goal) (goalRecord, error) {
	rec := goalRecord{
		ID:          goal.ID,
		Description: goal.Description,
		Thoughts:    goal.Thoughts,
		CreatedAt:   goal.CreatedAt.String(),
		LastSavedAt: goal.LastSavedAt.String(),
	}
	if goal.CompletedAt != nil {
		completed := goal.CompletedAt.String()
		rec.CompletedAt = &completed
	}
	var err error
	if rec.Tags, err = encodeJSON(goal.Tags, goal.ID); err != nil {
		return goalRecord{}, err
	}
	if rec.Requires, err = encodeJSON(goal.Requires, goal.ID); err != nil {
		return goalRecord{}, err
	}
	if rec.ValueComps, err = encodeJSON(encodeComponents(goal.ValueComponents), goal.ID); err != nil {
		return goalRecord{}, err
	}
	if rec.CostComps, err = encodeJSON(encodeComponents(goal.CostComponents), goal.ID); err != nil {
		return goalRecord{}, err
	}
	if rec.TimeComps, err = encodeJSON(encodeComponents(goal.TimeComponents), goal.ID); err != nil {
		return goalRecord{}, err
	}
	docs := make([]progressDoc, 0, len(goal.Progress))
	for _, p := range goal.Progress {
		focus := p.Focus.String()
		notes := p.Notes
		docs = append(docs, progressDoc{Start: p.Start.String(), End: p.End.String(), Focus: &focus, Notes: &notes})
	}
	if rec.Progress, err = encodeJSON(docs, goal.ID); err != nil {
		return goalRecord{}, err
	}
	return rec, nil
}

func decodeGoal(rec goalRecord) (*models.Goal, error) {
	goal := &models.Goal{
		ID:          rec.ID,
		Description: rec.Description,
		Thoughts:    rec.Thoughts,
	}
	var err error
	if goal.CreatedAt, err = parseTimestamp(rec.CreatedAt, rec.ID, "created_at"); err != nil {
		return nil, err
	}
	if goal.LastSavedAt, err = parseTimestamp(rec.LastSavedAt, rec.ID, "last_saved_at"); err != nil {
		return nil, err
	}
	if rec.CompletedAt != nil {
		completed, err := parseTimestamp(*rec.CompletedAt, rec.ID, "completed_at")
		if err != nil {
			return nil, err
		}
		goal.CompletedAt = &completed
	}
	if err := decodeJSON(rec.Tags, &goal.Tags, rec.ID, "tags"); err != nil {
		return nil, err
	}
	if err := decodeJSON(rec.Requires, &goal.Requires, rec.ID, "requires"); err != nil {
		return nil, err
	}
	if goal.ValueComponents, err = decodeComponents(rec.ValueComps, rec.ID, "value components"); err != nil {
		return nil, err
	}
	if goal.CostComponents, err = decodeComponents(rec.CostComps, rec.ID, "cost components"); err != nil {
		return nil, err
	}
	if goal.TimeComponents, err = decodeComponents(rec.TimeComps, rec.ID, "time components"); err != nil {
		return nil, err
	}
	var docs []progressDoc
	if err := decodeJSON(rec.Progress, &docs, rec.ID, "progress"); err != nil {
		return nil, err
	}
	for _, doc := range docs {
		entry := models.ProgressEntry{Focus: decimal.NewFromInt(1)}
		if entry.Start, err = parseTimestamp(doc.Start, rec.ID, "progress start"); err != nil {
			return nil, err
		}
		if entry.End, err = parseTimestamp(doc.End, rec.ID, "progress end"); err != nil {
			return nil, err
		}
		if doc.Focus != nil {
			if entry.Focus, err = parseTimestamp(*doc.Focus, rec.ID, "progress focus"); err != nil {
				return nil, err
			}
		}
		if doc.Notes != nil {
			entry.Notes = *doc.Notes
		}
		goal.Progress = append(goal.Progress, entry)
	}
	return goal, nil
}

func encodeComponents(components map[string]models.Range) map[string]rangeDoc {
	docs := make(map[string]rangeDoc, len(components))
	for reason, r := range components {
		docs[reason] = rangeDoc{Low: r.Low.String(), High: r.High.String()}
	}
	return docs
}

func decodeComponents(data string, goalID int64, field string) (map[string]models.Range, error) {
	var docs map[string]rangeDoc
	if err := decodeJSON(data, &docs, goalID, field); err != nil {
		return nil, err
	}
	components := make(map[string]models.Range, len(docs))
	for reason, doc := range docs {
		low, err := parseTimestamp(doc.Low, goalID, field)
		if err != nil {
			return nil, err
		}
		high, err := parseTimestamp(doc.High, goalID, field)
		if err != nil {
			return nil, err
		}
		components[reason] = models.Range{Low: low, High: high}
	}
	return components, nil
}

func encodeJSON(v any, goalID int64) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%w: encode goal #%d: %v", apperrors.ErrPersistence, goalID, err)
	}
	return string(data), nil
}

// decodeJSON decodes one stored JSON column. Unknown fields mean the record
// was written by a newer schema and are rejected rather than dropped.
func decodeJSON(data string, v any, goalID int64, field string) error {
	if data == "" {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(data)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: goal #%d %s: %v", apperrors.ErrPersistence, goalID, field, err)
	}
	return nil
}

func parseTimestamp(v string, goalID int64, field string) (decimal.Decimal, error) {
	if v == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: goal #%d %s: %v", apperrors.ErrPersistence, goalID, field, err)
	}
	return d, nil
}
