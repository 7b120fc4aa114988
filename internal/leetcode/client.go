// Package leetcode implements the remote problem catalog client.
package leetcode

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	apperrors "github.com/yhlin/leetcoder/internal/errors"
	"github.com/yhlin/leetcoder/internal/models"
)

const (
	defaultBaseURL = "https://leetcode.com/graphql"
	defaultTimeout = 10 * time.Second

	// catalogLimit bounds the catalog enumeration query.
	catalogLimit = 3000
)

const questionQuery = `
query questionData($titleSlug: String!) {
    question(titleSlug: $titleSlug) {
        questionFrontendId
        title
        titleSlug
        content
        difficulty
        topicTags {
            name
            slug
        }
        codeSnippets {
            lang
            langSlug
            code
        }
        hints
    }
}
`

const questionListQuery = `
query problemsetQuestionList($categorySlug: String, $limit: Int, $skip: Int, $filters: QuestionListFilterInput) {
    problemsetQuestionList: questionList(
        categorySlug: $categorySlug
        limit: $limit
        skip: $skip
        filters: $filters
    ) {
        questions: data {
            questionFrontendId
            titleSlug
        }
    }
}
`

// Summary identifies one catalog entry without its full metadata.
type Summary struct {
	ID   int
	Slug string
}

// slugCache is a lazily-populated id->slug mapping owned by one Client.
// It is filled by a single catalog enumeration and reused for the life of
// the client.
type slugCache struct {
	byID      map[int]string
	summaries []Summary
	populated bool
}

// Options configures a Client. Zero values select production defaults.
type Options struct {
	// BaseURL is the GraphQL endpoint (tests point this at a local server).
	BaseURL string
	// SnippetSlug selects which starter snippet language to keep.
	SnippetSlug string
	// HTTPClient overrides the default client with its 10s timeout.
	HTTPClient *http.Client
}

func (o *Options) defaults() {
	if o.BaseURL == "" {
		o.BaseURL = defaultBaseURL
	}
	if o.SnippetSlug == "" {
		o.SnippetSlug = "python3"
	}
	if o.HTTPClient == nil {
		o.HTTPClient = &http.Client{Timeout: defaultTimeout}
	}
}

// Client fetches problem metadata from the remote catalog.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	snippetSlug string
	slugs       slugCache
}

// NewClient creates a catalog client.
func NewClient(opts Options) *Client {
	opts.defaults()
	return &Client{
		httpClient:  opts.HTTPClient,
		baseURL:     opts.BaseURL,
		snippetSlug: opts.SnippetSlug,
	}
}

type question struct {
	QuestionFrontendID string `json:"questionFrontendId"`
	Title              string `json:"title"`
	TitleSlug          string `json:"titleSlug"`
	Content            string `json:"content"`
	Difficulty         string `json:"difficulty"`
	TopicTags          []struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	} `json:"topicTags"`
	CodeSnippets []struct {
		Lang     string `json:"lang"`
		LangSlug string `json:"langSlug"`
		Code     string `json:"code"`
	} `json:"codeSnippets"`
	Hints []string `json:"hints"`
}

// ProblemBySlug fetches a problem's full metadata by slug.
func (c *Client) ProblemBySlug(ctx context.Context, slug string) (*models.Problem, error) {
	var data struct {
		Question *question `json:"question"`
	}
	variables := map[string]interface{}{"titleSlug": slug}
	if err := c.do(ctx, questionQuery, variables, &data); err != nil {
		return nil, err
	}
	if data.Question == nil {
		return nil, apperrors.Newf(apperrors.ErrNotFound, "problem %q not found in catalog", slug)
	}
	return c.toProblem(data.Question)
}

// ProblemByID fetches a problem by its numeric identifier. The catalog is
// keyed by slug, so the first lookup populates the client's id->slug cache
// with one enumeration request.
func (c *Client) ProblemByID(ctx context.Context, id int) (*models.Problem, error) {
	if err := c.populateSlugs(ctx); err != nil {
		return nil, err
	}
	slug, ok := c.slugs.byID[id]
	if !ok {
		return nil, apperrors.Newf(apperrors.ErrNotFound, "problem %d not found in catalog", id)
	}
	return c.ProblemBySlug(ctx, slug)
}

// AllSummaries enumerates the catalog, in catalog order.
func (c *Client) AllSummaries(ctx context.Context) ([]Summary, error) {
	if err := c.populateSlugs(ctx); err != nil {
		return nil, err
	}
	out := make([]Summary, len(c.slugs.summaries))
	copy(out, c.slugs.summaries)
	return out, nil
}

// populateSlugs fills the slug cache once; later calls are no-ops.
func (c *Client) populateSlugs(ctx context.Context) error {
	if c.slugs.populated {
		return nil
	}

	var data struct {
		ProblemsetQuestionList struct {
			Questions []struct {
				QuestionFrontendID string `json:"questionFrontendId"`
				TitleSlug          string `json:"titleSlug"`
			} `json:"questions"`
		} `json:"problemsetQuestionList"`
	}
	variables := map[string]interface{}{
		"categorySlug": "",
		"skip":         0,
		"limit":        catalogLimit,
		"filters":      map[string]interface{}{},
	}
	if err := c.do(ctx, questionListQuery, variables, &data); err != nil {
		return err
	}

	c.slugs.byID = make(map[int]string)
	c.slugs.summaries = c.slugs.summaries[:0]
	for _, q := range data.ProblemsetQuestionList.Questions {
		id, err := strconv.Atoi(q.QuestionFrontendID)
		if err != nil || id <= 0 || q.TitleSlug == "" {
			continue
		}
		c.slugs.byID[id] = q.TitleSlug
		c.slugs.summaries = append(c.slugs.summaries, Summary{ID: id, Slug: q.TitleSlug})
	}
	c.slugs.populated = true
	return nil
}

func (c *Client) toProblem(q *question) (*models.Problem, error) {
	id, err := strconv.Atoi(q.QuestionFrontendID)
	if err != nil || id <= 0 {
		return nil, apperrors.Newf(apperrors.ErrFetch, "catalog returned invalid problem id %q", q.QuestionFrontendID)
	}

	var snippet string
	for _, s := range q.CodeSnippets {
		if s.LangSlug == c.snippetSlug {
			snippet = s.Code
			break
		}
	}

	tags := make(models.StringList, 0, len(q.TopicTags))
	for _, t := range q.TopicTags {
		tags = append(tags, t.Name)
	}

	return &models.Problem{
		ID:          id,
		Title:       q.Title,
		Slug:        q.TitleSlug,
		Difficulty:  models.Difficulty(q.Difficulty),
		Content:     q.Content,
		CodeSnippet: snippet,
		Tags:        tags,
		Hints:       models.StringList(q.Hints),
		URL:         models.ProblemURL(q.TitleSlug),
	}, nil
}

// do executes one GraphQL request. Network and HTTP failures are
// classified as transient FETCH_FAILED; GraphQL-level errors as NOT_FOUND
// since the catalog reports unknown slugs that way.
func (c *Client) do(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	payload := map[string]interface{}{
		"query":     query,
		"variables": variables,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternal, "failed to encode catalog request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternal, "failed to build catalog request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Referer", "https://leetcode.com")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrFetch, "catalog request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return apperrors.Newf(apperrors.ErrFetch, "catalog returned status %d", resp.StatusCode)
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return apperrors.Wrap(apperrors.ErrFetch, "failed to decode catalog response", err)
	}
	if len(envelope.Errors) > 0 {
		return apperrors.Newf(apperrors.ErrNotFound, "catalog error: %s", envelope.Errors[0].Message)
	}
	if len(envelope.Data) == 0 {
		return apperrors.New(apperrors.ErrFetch, "catalog response missing data")
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return apperrors.Wrap(apperrors.ErrFetch, "failed to decode catalog data", err)
	}
	return nil
}
