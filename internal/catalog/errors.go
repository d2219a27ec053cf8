// internal/catalog/errors.go
package catalog

import (
	"context"
	"errors"

	apperrors "matching-workers/internal/common/errors"
	"matching-workers/internal/models"
)

var (
	ErrNotLoaded         = errors.New("catalog snapshot not loaded")
	ErrNotFound          = errors.New("catalog item not found")
	ErrExists            = errors.New("catalog item already exists")
	ErrInvalidCollection = errors.New("invalid catalog collection")
	ErrInvalidRecord     = errors.New("invalid catalog record")
)

// Failures from a backend are wrapped with these so callers can tell a
// broken source from a bad request.
var (
	ErrLoadFailed    = errors.New("catalog load failed")
	ErrPersistFailed = errors.New("catalog persist failed")
)

// ToStandardError maps catalog failures onto job error codes. collection and
// id name the item the caller asked for. Unknown errors pass through.
func ToStandardError(err error, collection models.Collection, id string) error {
	if err == nil {
		return nil
	}
	if _, ok := apperrors.AsStandardError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, ErrNotLoaded):
		return apperrors.NewCatalogUnavailableError(err)
	case errors.Is(err, ErrLoadFailed):
		return apperrors.NewCatalogLoadFailedError("catalog", err)
	case errors.Is(err, ErrPersistFailed):
		return apperrors.NewCatalogPersistFailedError(err)
	case errors.Is(err, ErrNotFound):
		return apperrors.NewCatalogItemNotFoundError(string(collection), id)
	case errors.Is(err, ErrExists):
		return apperrors.NewCatalogItemExistsError(string(collection), id)
	case errors.Is(err, ErrInvalidCollection), errors.Is(err, ErrInvalidRecord):
		return apperrors.NewInputValidationError(err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.NewTimeoutError("catalog", err)
	}
	return err
}
