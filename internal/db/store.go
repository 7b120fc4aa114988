package db

import (
	"database/sql"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/yhlin/leetcoder/internal/errors"
	"github.com/yhlin/leetcoder/internal/models"
)

// Store provides durable, queryable storage of problem records and
// added-problem bookkeeping. It owns both tables; other layers mutate
// them only through Store methods.
type Store struct {
	db *sql.DB
}

// NewStore creates a new Store instance.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const problemColumns = "id, title, slug, difficulty, content, code_snippet, tags, hints, url, synced_at"

// UpsertProblem inserts or fully replaces a problem keyed by ID.
// Replacing an existing row is not an error; SyncedAt is refreshed.
func (s *Store) UpsertProblem(p *models.Problem) error {
	if p.ID <= 0 {
		return apperrors.Newf(apperrors.ErrInvalid, "problem id must be positive, got %d", p.ID)
	}
	if p.Slug == "" {
		return apperrors.New(apperrors.ErrInvalid, "problem slug must not be empty")
	}
	p.SyncedAt = time.Now().Unix()

	query := `
	INSERT OR REPLACE INTO problems
	(id, title, slug, difficulty, content, code_snippet, tags, hints, url, synced_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.Exec(query, p.ID, p.Title, p.Slug, p.Difficulty, p.Content,
		p.CodeSnippet, p.Tags, p.Hints, p.URL, p.SyncedAt)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, "failed to upsert problem", err)
	}
	return nil
}

// GetProblem retrieves a problem by ID. A missing row is not an error;
// it returns (nil, nil).
func (s *Store) GetProblem(id int) (*models.Problem, error) {
	return s.getProblem("SELECT "+problemColumns+" FROM problems WHERE id = ?", id)
}

// GetProblemBySlug retrieves a problem by its slug (alternate key).
func (s *Store) GetProblemBySlug(slug string) (*models.Problem, error) {
	return s.getProblem("SELECT "+problemColumns+" FROM problems WHERE slug = ?", slug)
}

func (s *Store) getProblem(query string, arg interface{}) (*models.Problem, error) {
	var p models.Problem
	err := s.db.QueryRow(query, arg).Scan(
		&p.ID, &p.Title, &p.Slug, &p.Difficulty, &p.Content,
		&p.CodeSnippet, &p.Tags, &p.Hints, &p.URL, &p.SyncedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, "failed to query problem", err)
	}
	return &p, nil
}

// MarkAdded creates or replaces the added-problem record for id.
// It validates referential integrity: marking a problem that is not in
// the store fails with NOT_FOUND.
func (s *Store) MarkAdded(id int, filename string) error {
	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM problems WHERE id = ?)", id).Scan(&exists)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, "failed to check problem", err)
	}
	if !exists {
		return apperrors.Newf(apperrors.ErrNotFound, "problem %d is not in the store", id)
	}

	query := `
	INSERT OR REPLACE INTO added_problems (id, filename, added_at)
	VALUES (?, ?, ?)
	`
	_, err = s.db.Exec(query, id, filename, time.Now().Unix())
	if err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, "failed to mark problem as added", err)
	}
	return nil
}

// IsAdded reports whether an added-problem record exists for id.
func (s *Store) IsAdded(id int) (bool, error) {
	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM added_problems WHERE id = ?)", id).Scan(&exists)
	if err != nil {
		return false, apperrors.Wrap(apperrors.ErrStorage, "failed to check added problem", err)
	}
	return exists, nil
}

// AddedFilename returns the stub filename recorded for id, or "" when the
// problem was never marked as added.
func (s *Store) AddedFilename(id int) (string, error) {
	var filename string
	err := s.db.QueryRow("SELECT filename FROM added_problems WHERE id = ?", id).Scan(&filename)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrStorage, "failed to query added problem", err)
	}
	return filename, nil
}

// DeleteAdded removes the added-problem record for id. Deleting a record
// that does not exist is a no-op.
func (s *Store) DeleteAdded(id int) error {
	_, err := s.db.Exec("DELETE FROM added_problems WHERE id = ?", id)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, "failed to delete added problem", err)
	}
	return nil
}

// ListAdded returns all added problems joined with their metadata,
// ordered by problem ID.
func (s *Store) ListAdded() ([]*models.AddedRecord, error) {
	query := `
	SELECT p.id, p.title, p.slug, p.difficulty, p.content, p.code_snippet,
		   p.tags, p.hints, p.url, p.synced_at, a.filename, a.added_at
	FROM problems p
	JOIN added_problems a ON p.id = a.id
	ORDER BY p.id
	`
	return s.queryAdded(query)
}

// SearchAddedByTitle returns added problems whose title or slug contains
// keyword, case-insensitively, ordered by problem ID.
func (s *Store) SearchAddedByTitle(keyword string) ([]*models.AddedRecord, error) {
	// LOWER() instead of LIKE's default folding, which is ASCII-only and
	// case-sensitive for the pattern operand in some builds.
	query := `
	SELECT p.id, p.title, p.slug, p.difficulty, p.content, p.code_snippet,
		   p.tags, p.hints, p.url, p.synced_at, a.filename, a.added_at
	FROM problems p
	JOIN added_problems a ON p.id = a.id
	WHERE instr(lower(p.title), lower(?)) > 0 OR instr(lower(p.slug), lower(?)) > 0
	ORDER BY p.id
	`
	return s.queryAdded(query, keyword, keyword)
}

// SearchAddedByTag returns added problems where any tag contains the given
// term, case-insensitively. Matching is substring based: "array" matches a
// tag named "Array" as well as longer labels containing the term.
func (s *Store) SearchAddedByTag(tag string) ([]*models.AddedRecord, error) {
	// The tags column is a JSON array; prefilter in SQL, then confirm the
	// match against individual tag values.
	query := `
	SELECT p.id, p.title, p.slug, p.difficulty, p.content, p.code_snippet,
		   p.tags, p.hints, p.url, p.synced_at, a.filename, a.added_at
	FROM problems p
	JOIN added_problems a ON p.id = a.id
	WHERE instr(lower(p.tags), lower(?)) > 0
	ORDER BY p.id
	`
	records, err := s.queryAdded(query, tag)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(tag)
	var matched []*models.AddedRecord
	for _, rec := range records {
		for _, t := range rec.Tags {
			if strings.Contains(strings.ToLower(t), needle) {
				matched = append(matched, rec)
				break
			}
		}
	}
	return matched, nil
}

func (s *Store) queryAdded(query string, args ...interface{}) ([]*models.AddedRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, "failed to query added problems", err)
	}
	defer rows.Close()

	var records []*models.AddedRecord
	for rows.Next() {
		var rec models.AddedRecord
		err := rows.Scan(
			&rec.ID, &rec.Title, &rec.Slug, &rec.Difficulty, &rec.Content,
			&rec.CodeSnippet, &rec.Tags, &rec.Hints, &rec.URL, &rec.SyncedAt,
			&rec.Filename, &rec.AddedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStorage, "failed to scan added problem", err)
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, "failed to iterate added problems", err)
	}
	return records, nil
}

// TagCount pairs a tag with the number of added problems carrying it.
type TagCount struct {
	Tag   string
	Count int
}

// Statistics aggregates counts over added problems only.
type Statistics struct {
	Total        int
	ByDifficulty map[models.Difficulty]int
	// TopTags holds at most 10 entries, sorted descending by count
	// (ties broken by tag name).
	TopTags []TagCount
}

// Statistics computes aggregate counts over added problems.
func (s *Store) Statistics() (*Statistics, error) {
	stats := &Statistics{ByDifficulty: make(map[models.Difficulty]int)}

	err := s.db.QueryRow("SELECT COUNT(*) FROM added_problems").Scan(&stats.Total)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, "failed to count added problems", err)
	}

	rows, err := s.db.Query(`
	SELECT p.difficulty, COUNT(*)
	FROM problems p
	JOIN added_problems a ON p.id = a.id
	GROUP BY p.difficulty
	`)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, "failed to count by difficulty", err)
	}
	defer rows.Close()

	for rows.Next() {
		var difficulty models.Difficulty
		var count int
		if err := rows.Scan(&difficulty, &count); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStorage, "failed to scan difficulty count", err)
		}
		stats.ByDifficulty[difficulty] = count
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, "failed to iterate difficulty counts", err)
	}

	tagRows, err := s.db.Query(`
	SELECT p.tags
	FROM problems p
	JOIN added_problems a ON p.id = a.id
	`)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, "failed to query tags", err)
	}
	defer tagRows.Close()

	counts := make(map[string]int)
	for tagRows.Next() {
		var tags models.StringList
		if err := tagRows.Scan(&tags); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStorage, "failed to scan tags", err)
		}
		for _, t := range tags {
			counts[t]++
		}
	}
	if err := tagRows.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, "failed to iterate tags", err)
	}

	for tag, count := range counts {
		stats.TopTags = append(stats.TopTags, TagCount{Tag: tag, Count: count})
	}
	sort.Slice(stats.TopTags, func(i, j int) bool {
		if stats.TopTags[i].Count != stats.TopTags[j].Count {
			return stats.TopTags[i].Count > stats.TopTags[j].Count
		}
		return stats.TopTags[i].Tag < stats.TopTags[j].Tag
	})
	if len(stats.TopTags) > 10 {
		stats.TopTags = stats.TopTags[:10]
	}

	return stats, nil
}

// SyncStatus describes how much of the remote catalog is stored locally.
type SyncStatus struct {
	TotalProblems int
	LastSync      time.Time
}

// SyncStatus returns the stored problem count and the most recent sync time.
func (s *Store) SyncStatus() (*SyncStatus, error) {
	status := &SyncStatus{}

	err := s.db.QueryRow("SELECT COUNT(*) FROM problems").Scan(&status.TotalProblems)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, "failed to count problems", err)
	}

	var lastSync sql.NullInt64
	err = s.db.QueryRow("SELECT MAX(synced_at) FROM problems").Scan(&lastSync)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, "failed to query last sync", err)
	}
	if lastSync.Valid {
		status.LastSync = time.Unix(lastSync.Int64, 0)
	}

	return status, nil
}

// StartSyncRun records the beginning of a bulk sync pass.
func (s *Store) StartSyncRun() (*models.SyncRun, error) {
	run := &models.SyncRun{
		ID:        uuid.New().String(),
		StartedAt: time.Now().Unix(),
	}
	_, err := s.db.Exec("INSERT INTO sync_runs (id, started_at) VALUES (?, ?)",
		run.ID, run.StartedAt)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, "failed to record sync run", err)
	}
	return run, nil
}

// FinishSyncRun records the outcome of a bulk sync pass.
func (s *Store) FinishSyncRun(run *models.SyncRun) error {
	run.FinishedAt = time.Now().Unix()
	query := `
	UPDATE sync_runs
	SET finished_at = ?, synced = ?, skipped = ?, failed = ?
	WHERE id = ?
	`
	_, err := s.db.Exec(query, run.FinishedAt, run.Synced, run.Skipped, run.Failed, run.ID)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, "failed to finish sync run", err)
	}
	return nil
}
