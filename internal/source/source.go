package source

import (
	"context"

	"jobexport/internal/domain"
)

// Source produces the rendered page the extractor runs over.
type Source interface {
	Name() string
	Load(ctx context.Context) (domain.Page, error)
}
