package handlers

import (
	"context"
	"fmt"
	"time"

	"ideaforge-backend/application/ports"
	"ideaforge-backend/application/queries"
	"ideaforge-backend/domain/core/entities"
	"ideaforge-backend/domain/core/valueobjects"
	pkgerrors "ideaforge-backend/pkg/errors"

	"go.uber.org/zap"
)

// GetIdeaHandler handles single idea queries
type GetIdeaHandler struct {
	ideaRepo ports.IdeaRepository
	logger   *zap.Logger
}

// NewGetIdeaHandler creates a new get idea handler
func NewGetIdeaHandler(ideaRepo ports.IdeaRepository, logger *zap.Logger) *GetIdeaHandler {
	return &GetIdeaHandler{
		ideaRepo: ideaRepo,
		logger:   logger,
	}
}

// Handle executes the get idea query
func (h *GetIdeaHandler) Handle(ctx context.Context, query queries.GetIdeaQuery) (*queries.IdeaResult, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}

	ideaID, err := valueobjects.NewIdeaIDFromString(query.IdeaID)
	if err != nil {
		return nil, fmt.Errorf("invalid idea ID: %w", err)
	}

	idea, err := h.ideaRepo.GetByID(ctx, ideaID)
	if err != nil {
		return nil, err
	}

	if idea.UserID() != query.UserID {
		return nil, pkgerrors.NewForbiddenError("idea does not belong to user")
	}

	if idea.IsDeleted() {
		return nil, pkgerrors.NewNotFoundError("idea")
	}

	result := ideaToResult(idea)
	return &result, nil
}

// ideaToResult maps an idea entity onto the query DTO
func ideaToResult(idea *entities.Idea) queries.IdeaResult {
	return queries.IdeaResult{
		ID:        idea.ID().String(),
		UserID:    idea.UserID(),
		Title:     idea.Content().Title(),
		Body:      idea.Content().Body(),
		Status:    string(idea.Status()),
		Tags:      idea.GetTags(),
		AudioURL:  idea.AudioURL(),
		Version:   idea.Version(),
		CreatedAt: idea.CreatedAt().UTC().Format(time.RFC3339),
		UpdatedAt: idea.UpdatedAt().UTC().Format(time.RFC3339),
	}
}
