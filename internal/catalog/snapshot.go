// internal/catalog/snapshot.go
package catalog

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"matching-workers/internal/models"
)

// Snapshot is an immutable view of the catalog. Callers must treat the
// returned records as read-only; the store never mutates a published
// snapshot.
type Snapshot struct {
	version  string
	source   string
	loadedAt time.Time

	tools    []models.CatalogRecord
	products []models.CatalogRecord

	toolIndex    map[string]int
	productIndex map[string]int
}

// ItemSummary is the short form of a record used by Info.
type ItemSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

type CollectionInfo struct {
	Count      int           `json:"count"`
	Categories []string      `json:"categories"`
	Items      []ItemSummary `json:"items"`
}

// Info describes a snapshot without exposing the full records.
type Info struct {
	Version  string         `json:"version"`
	Source   string         `json:"source"`
	LoadedAt time.Time      `json:"loadedAt"`
	Tools    CollectionInfo `json:"tools"`
	Products CollectionInfo `json:"products"`
}

// NewSnapshot validates c and indexes it by id. Record order is kept, since
// ranking ties fall back to catalog order.
func NewSnapshot(c models.Catalog, source string) (*Snapshot, error) {
	toolIndex, err := indexRecords(models.CollectionTools, c.Tools)
	if err != nil {
		return nil, err
	}
	productIndex, err := indexRecords(models.CollectionProducts, c.Products)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		version:      uuid.NewString(),
		source:       source,
		loadedAt:     time.Now().UTC(),
		tools:        append([]models.CatalogRecord{}, c.Tools...),
		products:     append([]models.CatalogRecord{}, c.Products...),
		toolIndex:    toolIndex,
		productIndex: productIndex,
	}, nil
}

func indexRecords(collection models.Collection, records []models.CatalogRecord) (map[string]int, error) {
	index := make(map[string]int, len(records))
	for i, rec := range records {
		if err := ValidateRecord(rec); err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", collection, i, err)
		}
		if _, dup := index[rec.ID]; dup {
			return nil, fmt.Errorf("%s: duplicate id %q: %w", collection, rec.ID, ErrInvalidRecord)
		}
		index[rec.ID] = i
	}
	return index, nil
}

// ValidateRecord checks the fields every record needs to be addressable and
// rendered.
func ValidateRecord(rec models.CatalogRecord) error {
	switch {
	case rec.ID == "":
		return fmt.Errorf("id is required: %w", ErrInvalidRecord)
	case rec.Name == "":
		return fmt.Errorf("name is required for %q: %w", rec.ID, ErrInvalidRecord)
	case rec.Category == "":
		return fmt.Errorf("category is required for %q: %w", rec.ID, ErrInvalidRecord)
	}
	return nil
}

// ParseCollection maps the names used by jobs and the CLI to a collection.
func ParseCollection(name string) (models.Collection, error) {
	switch name {
	case "tools", "tool", "ai_tools":
		return models.CollectionTools, nil
	case "products", "product":
		return models.CollectionProducts, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCollection, name)
}

func (s *Snapshot) Version() string     { return s.version }
func (s *Snapshot) Source() string      { return s.source }
func (s *Snapshot) LoadedAt() time.Time { return s.loadedAt }

// ListTools returns the tools in catalog order. The slice is a copy.
func (s *Snapshot) ListTools() []models.CatalogRecord {
	return append([]models.CatalogRecord{}, s.tools...)
}

// ListProducts returns the products in catalog order. The slice is a copy.
func (s *Snapshot) ListProducts() []models.CatalogRecord {
	return append([]models.CatalogRecord{}, s.products...)
}

func (s *Snapshot) GetTool(id string) (models.CatalogRecord, bool) {
	i, ok := s.toolIndex[id]
	if !ok {
		return models.CatalogRecord{}, false
	}
	return s.tools[i], true
}

func (s *Snapshot) GetProduct(id string) (models.CatalogRecord, bool) {
	i, ok := s.productIndex[id]
	if !ok {
		return models.CatalogRecord{}, false
	}
	return s.products[i], true
}

// List returns the records of a collection.
func (s *Snapshot) List(collection models.Collection) ([]models.CatalogRecord, error) {
	switch collection {
	case models.CollectionTools:
		return s.ListTools(), nil
	case models.CollectionProducts:
		return s.ListProducts(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidCollection, collection)
}

// Get looks a record up by collection and id.
func (s *Snapshot) Get(collection models.Collection, id string) (models.CatalogRecord, error) {
	var (
		rec models.CatalogRecord
		ok  bool
	)
	switch collection {
	case models.CollectionTools:
		rec, ok = s.GetTool(id)
	case models.CollectionProducts:
		rec, ok = s.GetProduct(id)
	default:
		return models.CatalogRecord{}, fmt.Errorf("%w: %q", ErrInvalidCollection, collection)
	}
	if !ok {
		return models.CatalogRecord{}, fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}
	return rec, nil
}

// Catalog returns the snapshot content in file layout.
func (s *Snapshot) Catalog() models.Catalog {
	return models.Catalog{Tools: s.ListTools(), Products: s.ListProducts()}
}

func (s *Snapshot) Info() Info {
	return Info{
		Version:  s.version,
		Source:   s.source,
		LoadedAt: s.loadedAt,
		Tools:    describe(s.tools),
		Products: describe(s.products),
	}
}

func describe(records []models.CatalogRecord) CollectionInfo {
	info := CollectionInfo{
		Count:      len(records),
		Categories: []string{},
		Items:      make([]ItemSummary, 0, len(records)),
	}
	seen := make(map[string]bool)
	for _, rec := range records {
		info.Items = append(info.Items, ItemSummary{ID: rec.ID, Name: rec.Name, Category: rec.Category})
		if !seen[rec.Category] {
			seen[rec.Category] = true
			info.Categories = append(info.Categories, rec.Category)
		}
	}
	sort.Strings(info.Categories)
	return info
}
