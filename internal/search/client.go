// Package search wraps Elasticsearch for athlete/coach profile search.
// The service runs without it; callers fall back to SQL ILIKE matching
// when no client is configured.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
)

// IndexProfiles is the profile search index name
const IndexProfiles = "profiles"

// Client wraps the Elasticsearch client
type Client struct {
	es *elasticsearch.Client
}

// NewClient creates a new Elasticsearch client and verifies the connection
func NewClient(esURL string) (*Client, error) {
	if esURL == "" {
		esURL = "http://localhost:9200"
	}

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{esURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	if _, err := es.Info(); err != nil {
		return nil, fmt.Errorf("failed to connect to Elasticsearch: %w", err)
	}

	return &Client{es: es}, nil
}

// InitializeIndices creates the profile index with its mapping
func (c *Client) InitializeIndices(ctx context.Context) error {
	mapping := map[string]interface{}{
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"user_id":   map[string]interface{}{"type": "keyword"},
				"full_name": map[string]interface{}{"type": "text", "analyzer": "standard"},
				"bio":       map[string]interface{}{"type": "text", "analyzer": "standard"},
				"location":  map[string]interface{}{"type": "text", "analyzer": "standard"},
				"user_type": map[string]interface{}{"type": "keyword"},
				"category":  map[string]interface{}{"type": "keyword"},
				"gym_name":  map[string]interface{}{"type": "text", "analyzer": "standard"},
				"created_at": map[string]interface{}{
					"type": "date",
				},
			},
		},
	}

	res, err := c.es.Indices.Exists([]string{IndexProfiles})
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}
	res.Body.Close()
	if res.StatusCode == 200 {
		return nil
	}

	body, err := json.Marshal(mapping)
	if err != nil {
		return fmt.Errorf("failed to marshal index mapping: %w", err)
	}

	createRes, err := c.es.Indices.Create(IndexProfiles,
		c.es.Indices.Create.WithBody(bytes.NewReader(body)),
		c.es.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to create profiles index: %w", err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		return fmt.Errorf("error creating profiles index: [%s]", createRes.Status())
	}
	return nil
}

// IndexProfile indexes a profile document for search
func (c *Client) IndexProfile(ctx context.Context, userID string, doc map[string]interface{}) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal profile document: %w", err)
	}

	res, err := c.es.Index(IndexProfiles, bytes.NewReader(body),
		c.es.Index.WithDocumentID(userID),
		c.es.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to index profile: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing profile: [%s]", res.Status())
	}
	return nil
}

// DeleteProfile removes a profile from the search index
func (c *Client) DeleteProfile(ctx context.Context, userID string) error {
	res, err := c.es.Delete(IndexProfiles, userID, c.es.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to delete profile from index: %w", err)
	}
	defer res.Body.Close()

	// 404 is fine, the profile was never indexed
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("error deleting profile: [%s]", res.Status())
	}
	return nil
}

// ProfileSearchHit is one profile match
type ProfileSearchHit struct {
	UserID   string  `json:"user_id"`
	FullName string  `json:"full_name"`
	Bio      string  `json:"bio"`
	Location string  `json:"location"`
	UserType string  `json:"user_type"`
	Category string  `json:"category"`
	GymName  string  `json:"gym_name"`
	Score    float64 `json:"score"`
}

// SearchProfilesResult holds profile search hits and the total match count
type SearchProfilesResult struct {
	Profiles []ProfileSearchHit `json:"profiles"`
	Total    int                `json:"total"`
}

// SearchProfiles runs a fuzzy full-text search over names, bios,
// locations and gym names, optionally filtered by user type and category.
func (c *Client) SearchProfiles(ctx context.Context, query, userType, category string, limit, offset int) (*SearchProfilesResult, error) {
	boolQuery := map[string]interface{}{
		"should": []map[string]interface{}{
			{
				"match": map[string]interface{}{
					"full_name": map[string]interface{}{
						"query":     query,
						"boost":     2.0,
						"fuzziness": "AUTO",
					},
				},
			},
			{
				"match": map[string]interface{}{
					"gym_name": map[string]interface{}{
						"query":     query,
						"boost":     1.5,
						"fuzziness": "AUTO",
					},
				},
			},
			{
				"match": map[string]interface{}{
					"location": map[string]interface{}{
						"query": query,
						"boost": 1.0,
					},
				},
			},
			{
				"match": map[string]interface{}{
					"bio": map[string]interface{}{
						"query": query,
						"boost": 0.5,
					},
				},
			},
		},
		"minimum_should_match": 1,
	}

	var filters []map[string]interface{}
	if userType != "" {
		filters = append(filters, map[string]interface{}{
			"term": map[string]interface{}{"user_type": userType},
		})
	}
	if category != "" {
		filters = append(filters, map[string]interface{}{
			"term": map[string]interface{}{"category": category},
		})
	}
	if len(filters) > 0 {
		boolQuery["filter"] = filters
	}

	searchQuery := map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
		"sort": []map[string]interface{}{
			{"_score": map[string]interface{}{"order": "desc"}},
		},
		"from": offset,
		"size": limit,
	}

	queryJSON, err := json.Marshal(searchQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search query: %w", err)
	}

	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(IndexProfiles),
		c.es.Search.WithBody(bytes.NewReader(queryJSON)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error searching profiles: [%s]", res.Status())
	}

	var searchResp struct {
		Hits struct {
			Total struct {
				Value int `json:"value"`
			} `json:"total"`
			Hits []struct {
				ID     string                 `json:"_id"`
				Score  float64                `json:"_score"`
				Source map[string]interface{} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	profiles := make([]ProfileSearchHit, 0, len(searchResp.Hits.Hits))
	for _, hit := range searchResp.Hits.Hits {
		p := ProfileSearchHit{
			UserID: hit.ID,
			Score:  hit.Score,
		}
		if v, ok := hit.Source["full_name"].(string); ok {
			p.FullName = v
		}
		if v, ok := hit.Source["bio"].(string); ok {
			p.Bio = v
		}
		if v, ok := hit.Source["location"].(string); ok {
			p.Location = v
		}
		if v, ok := hit.Source["user_type"].(string); ok {
			p.UserType = v
		}
		if v, ok := hit.Source["category"].(string); ok {
			p.Category = v
		}
		if v, ok := hit.Source["gym_name"].(string); ok {
			p.GymName = v
		}
		profiles = append(profiles, p)
	}

	return &SearchProfilesResult{
		Profiles: profiles,
		Total:    searchResp.Hits.Total.Value,
	}, nil
}
