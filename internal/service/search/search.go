package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/Eliahhango/Civil-web/internal/models"
)

// Index is the Elasticsearch index that mirrors the projects table.
const Index = "projects"

func Search(ctx context.Context, es *elasticsearch.Client, index, query string, from, size int) (int64, []models.Project, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"title^2", "description", "category", "location"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("search: encode query: %w", err)
	}

	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(index),
		es.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, nil, fmt.Errorf("search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Project `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	projects := make([]models.Project, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		projects[i] = hit.Source
	}
	return r.Hits.Total.Value, projects, nil
}

// IndexProject mirrors a project into the search index.
func IndexProject(ctx context.Context, es *elasticsearch.Client, index string, p *models.Project) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("search: encode project: %w", err)
	}

	res, err := es.Index(
		index,
		bytes.NewReader(data),
		es.Index.WithDocumentID(fmt.Sprint(p.ID)),
		es.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("search: index project %d: %w", p.ID, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("search: index project %d: %s", p.ID, res.Status())
	}
	return nil
}

// DeleteProject removes a project from the search index. A missing document
// is not an error.
func DeleteProject(ctx context.Context, es *elasticsearch.Client, index string, id uint) error {
	res, err := es.Delete(
		index,
		fmt.Sprint(id),
		es.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("search: delete project %d: %w", id, err)
	}
	defer res.Body.Close()

	if res.IsError() && !strings.Contains(res.Status(), "404") {
		return fmt.Errorf("search: delete project %d: %s", id, res.Status())
	}
	return nil
}
