package usecase

import (
	"context"

	"invoice-reconciler/internal/domain"
)

// DocumentRepository defines the interface for loading extracted documents.
// The usecase layer depends on this interface, not on a concrete
// implementation.
//
//go:generate mockgen -destination=mocks/mock_repository.go -source=interface.go DocumentRepository
type DocumentRepository interface {
	GetDocument(ctx context.Context, path string) (*domain.ExtractedDocument, error)
}
