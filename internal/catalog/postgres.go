// internal/catalog/postgres.go
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"matching-workers/internal/models"
)

const (
	createCatalogTableSQL = `
CREATE TABLE IF NOT EXISTS catalog_items (
    collection TEXT        NOT NULL,
    id         TEXT        NOT NULL,
    position   INTEGER     NOT NULL,
    document   JSONB       NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (collection, id)
)`

	selectCatalogSQL = `SELECT collection, document FROM catalog_items ORDER BY collection, position, id`

	// New rows go to the end of their collection; updates keep their place.
	upsertCatalogItemSQL = `
INSERT INTO catalog_items (collection, id, position, document, updated_at)
VALUES ($1, $2, (SELECT COALESCE(MAX(position) + 1, 0) FROM catalog_items WHERE collection = $1), $3, NOW())
ON CONFLICT (collection, id)
DO UPDATE SET document = EXCLUDED.document, updated_at = NOW()`

	seedCatalogItemSQL = `
INSERT INTO catalog_items (collection, id, position, document, updated_at)
VALUES ($1, $2, $3, $4, NOW())
ON CONFLICT (collection, id)
DO UPDATE SET position = EXCLUDED.position, document = EXCLUDED.document, updated_at = NOW()`

	deleteCatalogItemSQL = `DELETE FROM catalog_items WHERE collection = $1 AND id = $2`
)

// PostgresSource stores one JSONB document per record. position keeps the
// catalog order across reloads.
type PostgresSource struct {
	db *sql.DB
}

func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

func (p *PostgresSource) Name() string { return "postgres" }

// Migrate creates the catalog table when it is missing.
func (p *PostgresSource) Migrate(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, createCatalogTableSQL); err != nil {
		return fmt.Errorf("migrate catalog_items: %w", err)
	}
	return nil
}

func (p *PostgresSource) Load(ctx context.Context) (models.Catalog, error) {
	rows, err := p.db.QueryContext(ctx, selectCatalogSQL)
	if err != nil {
		return models.Catalog{}, fmt.Errorf("query catalog_items: %w", err)
	}
	defer rows.Close()

	c := models.Catalog{Tools: []models.CatalogRecord{}, Products: []models.CatalogRecord{}}
	for rows.Next() {
		var (
			collection string
			document   []byte
		)
		if err := rows.Scan(&collection, &document); err != nil {
			return models.Catalog{}, fmt.Errorf("scan catalog row: %w", err)
		}

		var rec models.CatalogRecord
		if err := json.Unmarshal(document, &rec); err != nil {
			return models.Catalog{}, fmt.Errorf("decode %s document: %w", collection, err)
		}

		switch models.Collection(collection) {
		case models.CollectionTools:
			c.Tools = append(c.Tools, rec)
		case models.CollectionProducts:
			c.Products = append(c.Products, rec)
		default:
			return models.Catalog{}, fmt.Errorf("row %q: %w: %q", rec.ID, ErrInvalidCollection, collection)
		}
	}
	if err := rows.Err(); err != nil {
		return models.Catalog{}, fmt.Errorf("iterate catalog rows: %w", err)
	}
	return c, nil
}

func (p *PostgresSource) Upsert(ctx context.Context, collection models.Collection, record models.CatalogRecord) error {
	document, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", collection, record.ID, err)
	}
	if _, err := p.db.ExecContext(ctx, upsertCatalogItemSQL, string(collection), record.ID, document); err != nil {
		return fmt.Errorf("upsert %s/%s: %w", collection, record.ID, err)
	}
	return nil
}

func (p *PostgresSource) Delete(ctx context.Context, collection models.Collection, id string) error {
	res, err := p.db.ExecContext(ctx, deleteCatalogItemSQL, string(collection), id)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("delete %s/%s: %w", collection, id, ErrNotFound)
	}
	return nil
}

// Seed writes a whole catalog in one transaction. Rows with the same id are
// replaced and take the position from c.
func (p *PostgresSource) Seed(ctx context.Context, c models.Catalog) (int, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, seedCatalogItemSQL)
	if err != nil {
		return 0, fmt.Errorf("prepare seed: %w", err)
	}
	defer stmt.Close()

	written := 0
	for _, batch := range []struct {
		collection models.Collection
		records    []models.CatalogRecord
	}{
		{models.CollectionTools, c.Tools},
		{models.CollectionProducts, c.Products},
	} {
		for i, rec := range batch.records {
			document, err := json.Marshal(rec)
			if err != nil {
				return 0, fmt.Errorf("encode %s/%s: %w", batch.collection, rec.ID, err)
			}
			if _, err := stmt.ExecContext(ctx, string(batch.collection), rec.ID, i, document); err != nil {
				return 0, fmt.Errorf("seed %s/%s: %w", batch.collection, rec.ID, err)
			}
			written++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit seed: %w", err)
	}
	return written, nil
}
