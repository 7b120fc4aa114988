// Package models provides data model definitions for leetcoder.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Difficulty is the catalog's difficulty rating for a problem.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// StringList is a string slice stored as a JSON array column.
type StringList []string

// Value implements driver.Valuer for StringList.
func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner for StringList.
func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}
	if len(data) == 0 {
		*s = nil
		return nil
	}
	return json.Unmarshal(data, (*[]string)(s))
}

// Problem represents one catalog problem's metadata.
// It is created or fully replaced by a sync/fetch and never edited in place.
type Problem struct {
	ID          int        `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Slug        string     `db:"slug" json:"slug"`
	Difficulty  Difficulty `db:"difficulty" json:"difficulty"`
	Content     string     `db:"content" json:"content"`
	CodeSnippet string     `db:"code_snippet" json:"code_snippet"`
	Tags        StringList `db:"tags" json:"tags"`
	Hints       StringList `db:"hints" json:"hints"`
	URL         string     `db:"url" json:"url"`
	SyncedAt    int64      `db:"synced_at" json:"synced_at"`
}

// TableName returns the table name for Problem.
func (Problem) TableName() string {
	return "problems"
}

// SyncedAtTime returns SyncedAt as time.Time.
func (p *Problem) SyncedAtTime() time.Time {
	return time.Unix(p.SyncedAt, 0)
}

// Complete reports whether the record carries everything stub generation
// needs: both the description markup and the starter code snippet.
func (p *Problem) Complete() bool {
	return p.Content != "" && p.CodeSnippet != ""
}

// ProblemURL derives the canonical reference link for a slug.
func ProblemURL(slug string) string {
	return fmt.Sprintf("https://leetcode.com/problems/%s/", slug)
}

// AddedProblem records that a stub file was generated for a problem.
// A row must always reference an existing Problem.
type AddedProblem struct {
	ID       int    `db:"id" json:"id"`
	Filename string `db:"filename" json:"filename"`
	AddedAt  int64  `db:"added_at" json:"added_at"`
}

// TableName returns the table name for AddedProblem.
func (AddedProblem) TableName() string {
	return "added_problems"
}

// AddedAtTime returns AddedAt as time.Time.
func (a *AddedProblem) AddedAtTime() time.Time {
	return time.Unix(a.AddedAt, 0)
}

// AddedRecord is a Problem joined with its materialization bookkeeping.
type AddedRecord struct {
	Problem
	Filename string `db:"filename" json:"filename"`
	AddedAt  int64  `db:"added_at" json:"added_at"`
}

// SyncRun records one bulk catalog sync pass.
type SyncRun struct {
	ID         string `db:"id" json:"id"`
	StartedAt  int64  `db:"started_at" json:"started_at"`
	FinishedAt int64  `db:"finished_at" json:"finished_at"`
	Synced     int    `db:"synced" json:"synced"`
	Skipped    int    `db:"skipped" json:"skipped"`
	Failed     int    `db:"failed" json:"failed"`
}

// TableName returns the table name for SyncRun.
func (SyncRun) TableName() string {
	return "sync_runs"
}
