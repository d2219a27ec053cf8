// internal/catalog/elasticsearch.go
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"matching-workers/internal/models"
)

// maxIndexedRecords bounds a single load; it matches the default
// index.max_result_window.
const maxIndexedRecords = 10000

// esDocument is the stored form of a record. position keeps catalog order.
type esDocument struct {
	Position int64 `json:"position"`
	models.CatalogRecord
}

type esSearchResponse struct {
	Hits struct {
		Hits []struct {
			Source esDocument `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

type esGetResponse struct {
	Found  bool       `json:"found"`
	Source esDocument `json:"_source"`
}

type esBulkResponse struct {
	Errors bool `json:"errors"`
	Items  []map[string]struct {
		ID     string `json:"_id"`
		Status int    `json:"status"`
		Error  *struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error,omitempty"`
	} `json:"items"`
}

// ElasticsearchSource keeps each collection in its own index.
type ElasticsearchSource struct {
	client        *elasticsearch.Client
	toolsIndex    string
	productsIndex string
}

func NewElasticsearchSource(client *elasticsearch.Client, toolsIndex, productsIndex string) *ElasticsearchSource {
	return &ElasticsearchSource{
		client:        client,
		toolsIndex:    toolsIndex,
		productsIndex: productsIndex,
	}
}

func (e *ElasticsearchSource) Name() string { return "elasticsearch" }

func (e *ElasticsearchSource) index(collection models.Collection) (string, error) {
	switch collection {
	case models.CollectionTools:
		return e.toolsIndex, nil
	case models.CollectionProducts:
		return e.productsIndex, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCollection, collection)
}

func (e *ElasticsearchSource) Load(ctx context.Context) (models.Catalog, error) {
	tools, err := e.search(ctx, e.toolsIndex)
	if err != nil {
		return models.Catalog{}, err
	}
	products, err := e.search(ctx, e.productsIndex)
	if err != nil {
		return models.Catalog{}, err
	}
	return models.Catalog{Tools: tools, Products: products}, nil
}

// search returns every record of an index in position order. A missing
// index is an empty collection.
func (e *ElasticsearchSource) search(ctx context.Context, index string) ([]models.CatalogRecord, error) {
	query := map[string]interface{}{
		"query": map[string]interface{}{"match_all": map[string]interface{}{}},
		"sort":  []interface{}{map[string]interface{}{"position": map[string]interface{}{"order": "asc"}}},
		"size":  maxIndexedRecords,
	}
	body, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	req := esapi.SearchRequest{
		Index: []string{index},
		Body:  bytes.NewReader(body),
	}
	res, err := req.Do(ctx, e.client)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", index, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return []models.CatalogRecord{}, nil
	}
	if res.IsError() {
		return nil, fmt.Errorf("search %s failed: %s", index, res.String())
	}

	var r esSearchResponse
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode %s search response: %w", index, err)
	}

	records := make([]models.CatalogRecord, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		records = append(records, hit.Source.CatalogRecord)
	}
	return records, nil
}

// Upsert replaces the document and keeps an existing position. New
// documents are placed after everything indexed so far.
func (e *ElasticsearchSource) Upsert(ctx context.Context, collection models.Collection, record models.CatalogRecord) error {
	index, err := e.index(collection)
	if err != nil {
		return err
	}

	position, found, err := e.position(ctx, index, record.ID)
	if err != nil {
		return err
	}
	if !found {
		position = time.Now().UnixNano()
	}

	body, err := json.Marshal(esDocument{Position: position, CatalogRecord: record})
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", collection, record.ID, err)
	}

	req := esapi.IndexRequest{
		Index:      index,
		DocumentID: record.ID,
		Body:       bytes.NewReader(body),
		Refresh:    "true",
	}
	res, err := req.Do(ctx, e.client)
	if err != nil {
		return fmt.Errorf("index %s/%s: %w", index, record.ID, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index %s/%s failed: %s", index, record.ID, res.String())
	}
	return nil
}

func (e *ElasticsearchSource) position(ctx context.Context, index, id string) (int64, bool, error) {
	req := esapi.GetRequest{Index: index, DocumentID: id}
	res, err := req.Do(ctx, e.client)
	if err != nil {
		return 0, false, fmt.Errorf("get %s/%s: %w", index, id, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return 0, false, nil
	}
	if res.IsError() {
		return 0, false, fmt.Errorf("get %s/%s failed: %s", index, id, res.String())
	}

	var r esGetResponse
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, false, fmt.Errorf("decode %s/%s: %w", index, id, err)
	}
	return r.Source.Position, r.Found, nil
}

func (e *ElasticsearchSource) Delete(ctx context.Context, collection models.Collection, id string) error {
	index, err := e.index(collection)
	if err != nil {
		return err
	}

	req := esapi.DeleteRequest{Index: index, DocumentID: id, Refresh: "true"}
	res, err := req.Do(ctx, e.client)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", index, id, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return fmt.Errorf("delete %s/%s: %w", index, id, ErrNotFound)
	}
	if res.IsError() {
		return fmt.Errorf("delete %s/%s failed: %s", index, id, res.String())
	}
	return nil
}

// Index bulk-writes a whole catalog, using each record's position in c.
func (e *ElasticsearchSource) Index(ctx context.Context, c models.Catalog) (int, error) {
	var buf bytes.Buffer
	count := 0

	for _, batch := range []struct {
		index   string
		records []models.CatalogRecord
	}{
		{e.toolsIndex, c.Tools},
		{e.productsIndex, c.Products},
	} {
		for i, rec := range batch.records {
			meta := map[string]interface{}{
				"index": map[string]interface{}{"_index": batch.index, "_id": rec.ID},
			}
			if err := writeNDJSON(&buf, meta); err != nil {
				return 0, err
			}
			if err := writeNDJSON(&buf, esDocument{Position: int64(i), CatalogRecord: rec}); err != nil {
				return 0, err
			}
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}

	req := esapi.BulkRequest{Body: &buf, Refresh: "true"}
	res, err := req.Do(ctx, e.client)
	if err != nil {
		return 0, fmt.Errorf("bulk index catalog: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, fmt.Errorf("bulk index catalog failed: %s", res.String())
	}

	var r esBulkResponse
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, fmt.Errorf("decode bulk response: %w", err)
	}
	if r.Errors {
		return 0, fmt.Errorf("bulk index catalog: %s", bulkFailures(r))
	}
	return count, nil
}

func writeNDJSON(buf *bytes.Buffer, v interface{}) error {
	line, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode bulk line: %w", err)
	}
	buf.Write(line)
	buf.WriteByte('\n')
	return nil
}

func bulkFailures(r esBulkResponse) string {
	var failures []string
	for _, item := range r.Items {
		for _, result := range item {
			if result.Error != nil {
				failures = append(failures, fmt.Sprintf("%s: %s", result.ID, result.Error.Reason))
			}
		}
	}
	return strings.Join(failures, "; ")
}
