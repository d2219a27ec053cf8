// internal/catalog/source.go
package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"matching-workers/internal/models"
)

//go:embed data/catalog.json
var seedCatalog []byte

// Source loads a complete catalog.
type Source interface {
	Name() string
	Load(ctx context.Context) (models.Catalog, error)
}

// Writer persists single-record mutations. Upsert appends unknown ids to
// the end of the collection.
type Writer interface {
	Upsert(ctx context.Context, collection models.Collection, record models.CatalogRecord) error
	Delete(ctx context.Context, collection models.Collection, id string) error
}

// ParseCatalog decodes a catalog file. Unknown top-level keys are rejected
// so a misspelled collection name does not silently load an empty catalog.
func ParseCatalog(data []byte) (models.Catalog, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var c models.Catalog
	if err := dec.Decode(&c); err != nil {
		return models.Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	if c.Tools == nil {
		c.Tools = []models.CatalogRecord{}
	}
	if c.Products == nil {
		c.Products = []models.CatalogRecord{}
	}
	return c, nil
}

// EmbeddedSource serves the catalog compiled into the binary.
type EmbeddedSource struct{}

func NewEmbeddedSource() *EmbeddedSource { return &EmbeddedSource{} }

func (EmbeddedSource) Name() string { return "embedded" }

func (EmbeddedSource) Load(ctx context.Context) (models.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return models.Catalog{}, err
	}
	return ParseCatalog(seedCatalog)
}

// FileSource reads and writes a catalog JSON file.
type FileSource struct {
	path string
	mu   sync.Mutex
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (f *FileSource) Name() string { return "file:" + f.path }

func (f *FileSource) Load(ctx context.Context) (models.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return models.Catalog{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read()
}

func (f *FileSource) read() (models.Catalog, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return models.Catalog{}, fmt.Errorf("read catalog file: %w", err)
	}
	return ParseCatalog(data)
}

// write replaces the file through a temp file in the same directory.
func (f *FileSource) write(c models.Catalog) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".catalog-*.json")
	if err != nil {
		return fmt.Errorf("create temp catalog file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp catalog file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp catalog file: %w", err)
	}
	return os.Rename(tmp.Name(), f.path)
}

func (f *FileSource) Upsert(ctx context.Context, collection models.Collection, record models.CatalogRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	c, err := f.read()
	if err != nil {
		return err
	}
	records, err := collectionOf(&c, collection)
	if err != nil {
		return err
	}
	for i := range *records {
		if (*records)[i].ID == record.ID {
			(*records)[i] = record
			return f.write(c)
		}
	}
	*records = append(*records, record)
	return f.write(c)
}

func (f *FileSource) Delete(ctx context.Context, collection models.Collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	c, err := f.read()
	if err != nil {
		return err
	}
	records, err := collectionOf(&c, collection)
	if err != nil {
		return err
	}
	kept := (*records)[:0]
	for _, rec := range *records {
		if rec.ID != id {
			kept = append(kept, rec)
		}
	}
	*records = kept
	return f.write(c)
}

func collectionOf(c *models.Catalog, collection models.Collection) (*[]models.CatalogRecord, error) {
	switch collection {
	case models.CollectionTools:
		return &c.Tools, nil
	case models.CollectionProducts:
		return &c.Products, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidCollection, collection)
}
