// ABOUTME: Knowledge-base endpoints: categories, guides, search, AI suggestion
// ABOUTME: Public reads, language passed as query parameter or Accept-Language

package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// GuideCategory groups guides by topic.
type GuideCategory struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Icon  string `json:"icon,omitempty"`
}

// Guide is a knowledge-base article summary.
type Guide struct {
	Slug        string         `json:"slug"`
	Title       string         `json:"title"`
	Snippet     string         `json:"snippet"`
	PublishedAt string         `json:"published_at"`
	Tags        []string       `json:"tags,omitempty"`
	Category    *GuideCategory `json:"category,omitempty"`
}

// GuideDetail is the full article body.
type GuideDetail struct {
	Slug        string        `json:"slug"`
	Title       string        `json:"title"`
	Body        string        `json:"body"`
	Tags        []string      `json:"tags,omitempty"`
	PublishedAt string        `json:"published_at"`
	Category    GuideCategory `json:"category"`
}

// ExternalLink is a curated outbound resource.
type ExternalLink struct {
	Label    string `json:"label"`
	URL      string `json:"url"`
	Category string `json:"category,omitempty"`
	Order    int    `json:"order"`
}

// SearchResult is one semantic search hit.
type SearchResult struct {
	Score         float64 `json:"score"`
	Text          string  `json:"text"`
	DocumentTitle string  `json:"document_title"`
	DocumentSlug  string  `json:"document_slug"`
	ChunkIndex    int     `json:"chunk_index"`
}

// AISuggestion is a generated answer with related guides.
type AISuggestion struct {
	Title         string  `json:"title"`
	Content       string  `json:"content"`
	RelatedGuides []Guide `json:"related_guides"`
}

// Categories lists guide categories in the given language.
func (c *Client) Categories(ctx context.Context, lang string) ([]GuideCategory, error) {
	path := endpointKnowledgeCategories + "?lang=" + url.QueryEscape(lang)

	var categories []GuideCategory
	if err := c.do(ctx, http.MethodGet, path, requestOptions{skipAuth: true}, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GuideQuery filters the guide listing.
type GuideQuery struct {
	Category string
	Search   string
	Lang     string
}

// Guides lists knowledge-base guides matching the query.
func (c *Client) Guides(ctx context.Context, query GuideQuery) ([]Guide, error) {
	params := url.Values{}
	params.Set("lang", query.Lang)
	if query.Category != "" {
		params.Set("category", query.Category)
	}
	if query.Search != "" {
		params.Set("search", query.Search)
	}
	path := endpointKnowledgeGuides + "?" + params.Encode()

	var guides []Guide
	if err := c.do(ctx, http.MethodGet, path, requestOptions{skipAuth: true}, &guides); err != nil {
		return nil, err
	}
	return guides, nil
}

// Guide fetches the full body of one guide.
func (c *Client) Guide(ctx context.Context, slug, lang string) (*GuideDetail, error) {
	path := endpointKnowledgeGuide(slug) + "?lang=" + url.QueryEscape(lang)

	var detail GuideDetail
	if err := c.do(ctx, http.MethodGet, path, requestOptions{skipAuth: true}, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Links lists curated external resources.
func (c *Client) Links(ctx context.Context, lang string) ([]ExternalLink, error) {
	path := endpointKnowledgeLinks + "?lang=" + url.QueryEscape(lang)

	var links []ExternalLink
	if err := c.do(ctx, http.MethodGet, path, requestOptions{skipAuth: true}, &links); err != nil {
		return nil, err
	}
	return links, nil
}

// Search runs a semantic search over the knowledge base returning up to k hits.
func (c *Client) Search(ctx context.Context, query string, k int, lang string) ([]SearchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("k", strconv.Itoa(k))
	params.Set("lang", lang)
	path := endpointKnowledgeSearch + "?" + params.Encode()

	var results []SearchResult
	if err := c.do(ctx, http.MethodGet, path, requestOptions{skipAuth: true}, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// Suggest generates an AI answer for queries with no matching guide. The
// language travels in the Accept-Language header, which the backend prefers
// over query parameters for this endpoint.
func (c *Client) Suggest(ctx context.Context, query string, relatedSlugs []string, lang string) (*AISuggestion, error) {
	body := map[string]any{
		"query":               query,
		"related_guide_slugs": relatedSlugs,
	}
	opts := requestOptions{
		body:     body,
		skipAuth: true,
		headers:  map[string]string{"Accept-Language": lang},
	}

	var suggestion AISuggestion
	if err := c.do(ctx, http.MethodPost, endpointKnowledgeSuggest, opts, &suggestion); err != nil {
		return nil, err
	}
	return &suggestion, nil
}

// GuideFeedback submits a helpful / not-helpful rating for a guide.
func (c *Client) GuideFeedback(ctx context.Context, slug, rating, comment string) error {
	body := map[string]string{
		"guide_slug": slug,
		"rating":     rating,
		"comment":    comment,
	}
	return c.do(ctx, http.MethodPost, endpointKnowledgeGuideFeedback(slug), requestOptions{body: body, skipAuth: true}, nil)
}
