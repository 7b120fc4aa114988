package leetcode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yhlin/leetcoder/internal/errors"
)

type fakeQuestion struct {
	id      int
	title   string
	slug    string
	content string
	diff    string
	tags    []string
	snippet string
}

// fakeCatalog serves the two GraphQL queries the client issues. Slugs in
// missingDetail are enumerated by the list query but resolve to a null
// question, mimicking entries the catalog lists but will not serve.
type fakeCatalog struct {
	questions     []fakeQuestion
	missingDetail []string
	listRequests  int
}

func (f *fakeCatalog) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Query     string                 `json:"query"`
			Variables map[string]interface{} `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if strings.Contains(payload.Query, "problemsetQuestionList") {
			f.listRequests++
			questions := make([]map[string]string, 0, len(f.questions))
			for _, q := range f.questions {
				questions = append(questions, map[string]string{
					"questionFrontendId": fmt.Sprintf("%d", q.id),
					"titleSlug":          q.slug,
				})
			}
			json.NewEncoder(w).Encode(map[string]interface{}{
				"data": map[string]interface{}{
					"problemsetQuestionList": map[string]interface{}{
						"questions": questions,
					},
				},
			})
			return
		}

		slug, _ := payload.Variables["titleSlug"].(string)
		for _, missing := range f.missingDetail {
			if slug == missing {
				json.NewEncoder(w).Encode(map[string]interface{}{
					"data": map[string]interface{}{"question": nil},
				})
				return
			}
		}
		for _, q := range f.questions {
			if q.slug != slug {
				continue
			}
			tags := make([]map[string]string, 0, len(q.tags))
			for _, tag := range q.tags {
				tags = append(tags, map[string]string{"name": tag, "slug": strings.ToLower(tag)})
			}
			json.NewEncoder(w).Encode(map[string]interface{}{
				"data": map[string]interface{}{
					"question": map[string]interface{}{
						"questionFrontendId": fmt.Sprintf("%d", q.id),
						"title":              q.title,
						"titleSlug":          q.slug,
						"content":            q.content,
						"difficulty":         q.diff,
						"topicTags":          tags,
						"codeSnippets": []map[string]string{
							{"lang": "Python3", "langSlug": "python3", "code": q.snippet},
							{"lang": "Go", "langSlug": "golang", "code": "func stub() {}"},
						},
						"hints": []string{},
					},
				},
			})
			return
		}

		// Unknown slug: null question, same as the real catalog.
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{"question": nil},
		})
	}
}

func defaultCatalog() *fakeCatalog {
	return &fakeCatalog{questions: []fakeQuestion{
		{
			id: 1, title: "Two Sum", slug: "two-sum",
			content: "<p>Given an array of integers.</p>", diff: "Easy",
			tags:    []string{"Array", "Hash Table"},
			snippet: "def twoSum(self, nums: List[int], target: int) -> List[int]:",
		},
		{
			id: 2, title: "Add Two Numbers", slug: "add-two-numbers",
			content: "<p>You are given two linked lists.</p>", diff: "Medium",
			tags:    []string{"Linked List", "Math"},
			snippet: "def addTwoNumbers(self, l1, l2):",
		},
	}}
}

func testClient(t *testing.T, catalog *fakeCatalog) *Client {
	t.Helper()
	srv := httptest.NewServer(catalog.handler())
	t.Cleanup(srv.Close)
	return NewClient(Options{BaseURL: srv.URL, SnippetSlug: "python3"})
}

func TestProblemBySlug(t *testing.T) {
	client := testClient(t, defaultCatalog())

	p, err := client.ProblemBySlug(context.Background(), "two-sum")
	require.NoError(t, err)

	assert.Equal(t, 1, p.ID)
	assert.Equal(t, "Two Sum", p.Title)
	assert.Equal(t, "two-sum", p.Slug)
	assert.Equal(t, "Easy", string(p.Difficulty))
	assert.Equal(t, []string{"Array", "Hash Table"}, []string(p.Tags))
	assert.Contains(t, p.CodeSnippet, "def twoSum")
	assert.Equal(t, "https://leetcode.com/problems/two-sum/", p.URL)
}

func TestProblemBySlugPicksConfiguredSnippet(t *testing.T) {
	catalog := defaultCatalog()
	srv := httptest.NewServer(catalog.handler())
	t.Cleanup(srv.Close)
	client := NewClient(Options{BaseURL: srv.URL, SnippetSlug: "golang"})

	p, err := client.ProblemBySlug(context.Background(), "two-sum")
	require.NoError(t, err)
	assert.Equal(t, "func stub() {}", p.CodeSnippet)
}

func TestProblemBySlugNotFound(t *testing.T) {
	client := testClient(t, defaultCatalog())

	_, err := client.ProblemBySlug(context.Background(), "no-such-problem")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestProblemByIDPopulatesSlugCacheOnce(t *testing.T) {
	catalog := defaultCatalog()
	client := testClient(t, catalog)

	p, err := client.ProblemByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "add-two-numbers", p.Slug)

	_, err = client.ProblemByID(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 1, catalog.listRequests, "the id->slug cache must be populated exactly once")
}

func TestProblemByIDNotFound(t *testing.T) {
	client := testClient(t, defaultCatalog())

	_, err := client.ProblemByID(context.Background(), 9999)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestAllSummaries(t *testing.T) {
	client := testClient(t, defaultCatalog())

	summaries, err := client.AllSummaries(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, Summary{ID: 1, Slug: "two-sum"}, summaries[0])
	assert.Equal(t, Summary{ID: 2, Slug: "add-two-numbers"}, summaries[1])
}

func TestTransientFailuresAreClassifiedAsFetchErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)
	client := NewClient(Options{BaseURL: srv.URL})

	_, err := client.ProblemBySlug(context.Background(), "two-sum")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrFetch))

	// Connection refused after the server goes away.
	srv.Close()
	_, err = client.ProblemBySlug(context.Background(), "two-sum")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrFetch))
}

func TestGraphQLErrorsAreNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"errors": []map[string]string{{"message": "That question doesn't exist."}},
		})
	}))
	t.Cleanup(srv.Close)
	client := NewClient(Options{BaseURL: srv.URL})

	_, err := client.ProblemBySlug(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}
