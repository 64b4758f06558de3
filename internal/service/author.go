package service

import (
	"context"

	"github.com/dlalic/unpacking/internal/logger"
	"github.com/dlalic/unpacking/internal/model"
)

type Author struct {
	authorStore model.AuthorStore
	logger      *logger.Logger
}

func NewAuthor(authorStore model.AuthorStore, logger *logger.Logger) *Author {
	return &Author{
		authorStore: authorStore,
		logger:      logger,
	}
}

func (s *Author) List(ctx context.Context) ([]model.Author, error) {
	return s.authorStore.List(ctx)
}
