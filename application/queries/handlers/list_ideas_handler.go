package handlers

import (
	"context"
	"fmt"

	"ideaforge-backend/application/ports"
	"ideaforge-backend/application/queries"

	"go.uber.org/zap"
)

const defaultListLimit = 20

// ListIdeasHandler handles idea listing queries
type ListIdeasHandler struct {
	ideaRepo ports.IdeaRepository
	logger   *zap.Logger
}

// NewListIdeasHandler creates a new list ideas handler
func NewListIdeasHandler(ideaRepo ports.IdeaRepository, logger *zap.Logger) *ListIdeasHandler {
	return &ListIdeasHandler{
		ideaRepo: ideaRepo,
		logger:   logger,
	}
}

// Handle executes the list ideas query
func (h *ListIdeasHandler) Handle(ctx context.Context, query queries.ListIdeasQuery) (*queries.ListIdeasResult, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}

	limit := query.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	criteria := ports.SearchCriteria{
		UserID:    query.UserID,
		Status:    query.Status,
		Limit:     limit,
		Offset:    query.Offset,
		OrderBy:   query.SortBy,
		OrderDesc: query.Order != "asc",
	}
	if query.Tag != "" {
		criteria.Tags = []string{query.Tag}
	}

	ideas, err := h.ideaRepo.Search(ctx, criteria)
	if err != nil {
		return nil, err
	}

	total, err := h.ideaRepo.CountByUserID(ctx, query.UserID)
	if err != nil {
		h.logger.Warn("failed to count ideas",
			zap.String("userID", query.UserID),
			zap.Error(err))
		total = len(ideas)
	}

	results := make([]queries.IdeaResult, 0, len(ideas))
	for _, idea := range ideas {
		results = append(results, ideaToResult(idea))
	}

	return &queries.ListIdeasResult{
		Ideas:  results,
		Total:  total,
		Limit:  limit,
		Offset: query.Offset,
	}, nil
}
