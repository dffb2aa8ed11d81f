package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ideaforge-backend/application/ports"
	"ideaforge-backend/application/queries"
	"ideaforge-backend/domain/core/entities"

	"go.uber.org/zap"
)

const (
	defaultDashboardLimit = 5

	// Staleness bound for the cached overview; writes are not invalidated,
	// the dashboard just lags them by at most this long.
	dashboardCacheTTL = 30 * time.Second
)

// GetDashboardHandler assembles the dashboard overview for a user. Results
// are cached per user to keep repeated dashboard loads off the repositories.
type GetDashboardHandler struct {
	ideaRepo ports.IdeaRepository
	docRepo  ports.DocumentRepository
	cache    ports.Cache
	logger   *zap.Logger
}

// NewGetDashboardHandler creates a new dashboard handler. A nil cache
// disables caching.
func NewGetDashboardHandler(
	ideaRepo ports.IdeaRepository,
	docRepo ports.DocumentRepository,
	cache ports.Cache,
	logger *zap.Logger,
) *GetDashboardHandler {
	return &GetDashboardHandler{
		ideaRepo: ideaRepo,
		docRepo:  docRepo,
		cache:    cache,
		logger:   logger,
	}
}

// Handle executes the dashboard query
func (h *GetDashboardHandler) Handle(ctx context.Context, query queries.GetDashboardQuery) (*queries.DashboardResult, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}

	limit := query.Limit
	if limit <= 0 {
		limit = defaultDashboardLimit
	}

	cacheKey := fmt.Sprintf("dashboard:%s:%d", query.UserID, limit)
	if h.cache != nil {
		if cached, ok := h.cache.Get(ctx, cacheKey); ok {
			if result, ok := cached.(*queries.DashboardResult); ok {
				return result, nil
			}
		}
	}

	ideas, err := h.ideaRepo.GetByUserID(ctx, query.UserID)
	if err != nil {
		return nil, err
	}

	docCount, err := h.docRepo.CountByUser(ctx, query.UserID)
	if err != nil {
		h.logger.Warn("failed to count documents",
			zap.String("userID", query.UserID),
			zap.Error(err))
	}

	recentDocs, err := h.docRepo.ListByUser(ctx, query.UserID, "", limit)
	if err != nil {
		h.logger.Warn("failed to list recent documents",
			zap.String("userID", query.UserID),
			zap.Error(err))
		recentDocs = []*entities.Document{}
	}

	result := &queries.DashboardResult{
		IdeaCount:       len(ideas),
		DocumentCount:   docCount,
		RecentIdeas:     []queries.IdeaResult{},
		RecentDocuments: []queries.DocumentResult{},
		StatusBreakdown: map[string]int{},
	}

	for i, idea := range ideas {
		result.StatusBreakdown[string(idea.Status())]++
		if i < limit {
			result.RecentIdeas = append(result.RecentIdeas, ideaToResult(idea))
		}
	}

	// Average overall score across the recent analysis documents
	var scoreSum, scoreCount int
	for _, doc := range recentDocs {
		result.RecentDocuments = append(result.RecentDocuments, *documentToResult(doc))

		if doc.Kind() != entities.KindAnalysis {
			continue
		}
		var payload struct {
			Scores struct {
				Overall int `json:"overall"`
			} `json:"scores"`
		}
		if err := json.Unmarshal(doc.Payload(), &payload); err != nil {
			continue
		}
		scoreSum += payload.Scores.Overall
		scoreCount++
	}
	if scoreCount > 0 {
		result.AverageScore = float64(scoreSum) / float64(scoreCount)
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, cacheKey, result, dashboardCacheTTL); err != nil {
			h.logger.Warn("failed to cache dashboard", zap.Error(err))
		}
	}

	return result, nil
}

// ListIngredientsHandler returns the frankenstein ingredient pool
type ListIngredientsHandler struct {
	ingredients ports.IngredientSource
}

// NewListIngredientsHandler creates a new ingredients handler
func NewListIngredientsHandler(ingredients ports.IngredientSource) *ListIngredientsHandler {
	return &ListIngredientsHandler{ingredients: ingredients}
}

// Handle executes the list ingredients query
func (h *ListIngredientsHandler) Handle(ctx context.Context, query queries.ListIngredientsQuery) (*queries.ListIngredientsResult, error) {
	first, second, err := h.ingredients.RandomPair()
	if err != nil {
		return nil, err
	}

	return &queries.ListIngredientsResult{
		First:       first,
		Second:      second,
		Ingredients: h.ingredients.All(),
	}, nil
}
