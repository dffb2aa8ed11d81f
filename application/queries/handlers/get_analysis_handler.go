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

// GetAnalysisHandler handles queries for the latest analysis of an idea
type GetAnalysisHandler struct {
	ideaRepo ports.IdeaRepository
	docRepo  ports.DocumentRepository
	logger   *zap.Logger
}

// NewGetAnalysisHandler creates a new get analysis handler
func NewGetAnalysisHandler(
	ideaRepo ports.IdeaRepository,
	docRepo ports.DocumentRepository,
	logger *zap.Logger,
) *GetAnalysisHandler {
	return &GetAnalysisHandler{
		ideaRepo: ideaRepo,
		docRepo:  docRepo,
		logger:   logger,
	}
}

// Handle executes the get analysis query
func (h *GetAnalysisHandler) Handle(ctx context.Context, query queries.GetAnalysisQuery) (*queries.DocumentResult, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}

	ideaID, err := valueobjects.NewIdeaIDFromString(query.IdeaID)
	if err != nil {
		return nil, fmt.Errorf("invalid idea ID: %w", err)
	}

	// Verify ownership before touching documents
	idea, err := h.ideaRepo.GetByID(ctx, ideaID)
	if err != nil {
		return nil, err
	}
	if idea.UserID() != query.UserID {
		return nil, pkgerrors.NewForbiddenError("idea does not belong to user")
	}

	kind := entities.DocumentKind(query.Kind)
	if query.Kind == "" {
		kind = entities.KindAnalysis
	}

	doc, err := h.docRepo.GetLatestByIdea(ctx, ideaID, kind)
	if err != nil {
		return nil, err
	}

	return documentToResult(doc), nil
}

// GetDocumentHandler handles queries for a document by ID
type GetDocumentHandler struct {
	docRepo ports.DocumentRepository
	logger  *zap.Logger
}

// NewGetDocumentHandler creates a new get document handler
func NewGetDocumentHandler(docRepo ports.DocumentRepository, logger *zap.Logger) *GetDocumentHandler {
	return &GetDocumentHandler{
		docRepo: docRepo,
		logger:  logger,
	}
}

// Handle executes the get document query
func (h *GetDocumentHandler) Handle(ctx context.Context, query queries.GetDocumentQuery) (*queries.DocumentResult, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}

	docID, err := valueobjects.NewDocumentIDFromString(query.DocumentID)
	if err != nil {
		return nil, fmt.Errorf("invalid document ID: %w", err)
	}

	doc, err := h.docRepo.GetByID(ctx, query.UserID, docID)
	if err != nil {
		return nil, err
	}

	if doc.UserID() != query.UserID {
		return nil, pkgerrors.NewForbiddenError("document does not belong to user")
	}

	return documentToResult(doc), nil
}

// documentToResult maps a document entity onto the query DTO
func documentToResult(doc *entities.Document) *queries.DocumentResult {
	result := &queries.DocumentResult{
		ID:        doc.ID().String(),
		Kind:      string(doc.Kind()),
		Payload:   doc.Payload(),
		CreatedAt: doc.CreatedAt().UTC().Format(time.RFC3339),
	}
	if !doc.IdeaID().IsZero() {
		result.IdeaID = doc.IdeaID().String()
	}
	return result
}
