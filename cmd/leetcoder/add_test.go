package main

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yhlin/leetcoder/internal/errors"
	"github.com/yhlin/leetcoder/internal/models"
)

func TestParseProblemArgNumericID(t *testing.T) {
	id, slug, err := parseProblemArg("42")
	require.NoError(t, err)
	assert.Equal(t, 42, id)
	assert.Empty(t, slug)
}

func TestParseProblemArgSlug(t *testing.T) {
	id, slug, err := parseProblemArg("two-sum")
	require.NoError(t, err)
	assert.Equal(t, 0, id)
	assert.Equal(t, "two-sum", slug)

	_, slug, err = parseProblemArg("lru")
	require.NoError(t, err)
	assert.Equal(t, "lru", slug)
}

func TestParseProblemArgRejectsInvalidInput(t *testing.T) {
	for _, arg := range []string{"0", "-3", "", "Two Sum", "two--sum", "-two-sum", "two-sum-", "two_sum"} {
		_, _, err := parseProblemArg(arg)
		require.Error(t, err, "arg %q", arg)
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalid), "arg %q", arg)
	}
}

func TestTagSummaryTruncatesAfterThree(t *testing.T) {
	assert.Equal(t, "", tagSummary(nil))
	assert.Equal(t, "Array", tagSummary([]string{"Array"}))
	assert.Equal(t, "Array, Hash Table, Math", tagSummary([]string{"Array", "Hash Table", "Math"}))
	assert.Equal(t, "Array, Hash Table, Math...",
		tagSummary([]string{"Array", "Hash Table", "Math", "Two Pointers"}))
}

func TestPrintRecords(t *testing.T) {
	color.NoColor = true
	records := []*models.AddedRecord{
		{
			Problem: models.Problem{
				ID:         1,
				Title:      "Two Sum",
				Difficulty: models.DifficultyEasy,
				Tags:       models.StringList{"Array", "Hash Table"},
			},
			Filename: "p0001_two_sum.py",
		},
	}

	var buf bytes.Buffer
	printRecords(&buf, records, true)
	out := buf.String()
	assert.Contains(t, out, "FILE")
	assert.Contains(t, out, "Two Sum")
	assert.Contains(t, out, "Easy")
	assert.Contains(t, out, "p0001_two_sum.py")

	buf.Reset()
	printRecords(&buf, records, false)
	assert.NotContains(t, buf.String(), "p0001_two_sum.py")
}
