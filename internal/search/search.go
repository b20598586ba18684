package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/mvolkova/kids_shop/internal/models"
)

const productIndex = "products"

// Client wraps the Elasticsearch connection. A nil Client is valid:
// indexing becomes a no-op and Enabled reports false, so the catalog
// falls back to the SQL filter.
type Client struct {
	es *elasticsearch.Client
}

func NewClient(url, user, password string) (*Client, error) {
	if url == "" {
		return nil, nil
	}
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{url},
		Username:  user,
		Password:  password,
	})
	if err != nil {
		return nil, fmt.Errorf("es client: %w", err)
	}
	res, err := es.Info()
	if err != nil {
		return nil, fmt.Errorf("es info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("es info: %s", res.Status())
	}
	return &Client{es: es}, nil
}

func (c *Client) Enabled() bool { return c != nil }

func (c *Client) IndexProduct(ctx context.Context, p *models.Product) error {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	res, err := c.es.Index(
		productIndex,
		bytes.NewReader(data),
		c.es.Index.WithContext(ctx),
		c.es.Index.WithDocumentID(strconv.FormatUint(uint64(p.ID), 10)),
	)
	if err != nil {
		return fmt.Errorf("es index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

func (c *Client) DeleteProduct(ctx context.Context, id uint) error {
	if c == nil {
		return nil
	}
	res, err := c.es.Delete(
		productIndex,
		strconv.FormatUint(uint64(id), 10),
		c.es.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("es delete: %w", err)
	}
	defer res.Body.Close()
	// 404 means it was never indexed, which is fine.
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("es delete: %s", res.Status())
	}
	return nil
}

// SearchProducts answers the catalog text query from the index. The
// query is a case-insensitive substring match over name OR
// description, and the sort option maps onto the same fixed orderings
// as the SQL filter, so both paths obey one contract.
func (c *Client) SearchProducts(ctx context.Context, q, category, ageGroup, sort string) ([]models.Product, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(searchBody(q, category, ageGroup, sort)); err != nil {
		return nil, err
	}

	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(productIndex),
		c.es.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("es search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Source models.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, err
	}

	prods := make([]models.Product, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		prods[i] = hit.Source
	}
	return prods, nil
}

func searchBody(q, category, ageGroup, sort string) map[string]any {
	needle := "*" + strings.ToLower(q) + "*"
	should := []map[string]any{
		{"wildcard": map[string]any{"name": map[string]any{"value": needle, "case_insensitive": true}}},
		{"wildcard": map[string]any{"description": map[string]any{"value": needle, "case_insensitive": true}}},
	}
	filter := make([]map[string]any, 0, 2)
	if category != "" {
		filter = append(filter, map[string]any{"term": map[string]any{"category.keyword": category}})
	}
	if ageGroup != "" {
		filter = append(filter, map[string]any{"term": map[string]any{"age_group.keyword": ageGroup}})
	}

	return map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"should":               should,
				"minimum_should_match": 1,
				"filter":               filter,
			},
		},
		"sort": sortClause(sort),
	}
}

// sortClause mirrors the SQL filter's order mapping, unknown values
// included: anything unrecognized falls back to newest-by-id.
func sortClause(sort string) []map[string]any {
	switch sort {
	case "price_asc":
		return []map[string]any{{"price": map[string]any{"order": "asc"}}}
	case "price_desc":
		return []map[string]any{{"price": map[string]any{"order": "desc"}}}
	case "newest":
		return []map[string]any{{"created_at": map[string]any{"order": "desc"}}}
	default:
		return []map[string]any{{"id": map[string]any{"order": "desc"}}}
	}
}
