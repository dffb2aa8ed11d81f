package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"ideaforge-backend/application/ports"
	"ideaforge-backend/domain/core/entities"
	"ideaforge-backend/domain/core/valueobjects"
	pkgerrors "ideaforge-backend/pkg/errors"

	"go.uber.org/zap"
)

// DocumentRepository implements ports.DocumentRepository on the local SQLite
// store. The local backend enforces a per-user document quota; the hosted
// backend does not.
type DocumentRepository struct {
	db     *sql.DB
	quota  int
	logger *zap.Logger
}

// NewDocumentRepository creates a new DocumentRepository. A quota of zero
// disables quota enforcement.
func NewDocumentRepository(store *Store, quota int, logger *zap.Logger) ports.DocumentRepository {
	return &DocumentRepository{
		db:     store.DB(),
		quota:  quota,
		logger: logger,
	}
}

// Save persists a document after checking the user's storage quota
func (r *DocumentRepository) Save(ctx context.Context, doc *entities.Document) error {
	if r.quota > 0 {
		count, err := r.CountByUser(ctx, doc.UserID())
		if err != nil {
			return err
		}
		if count >= r.quota {
			r.logger.Warn("document quota reached",
				zap.String("userID", doc.UserID()),
				zap.Int("quota", r.quota))
			return pkgerrors.NewQuotaExceededError(r.quota)
		}
	}

	var ideaID interface{}
	if !doc.IdeaID().IsZero() {
		ideaID = doc.IdeaID().String()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO documents (id, idea_id, user_id, kind, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		doc.ID().String(),
		ideaID,
		doc.UserID(),
		string(doc.Kind()),
		string(doc.Payload()),
		doc.CreatedAt().UTC().Format(timeLayout),
	)
	if err != nil {
		r.logger.Error("failed to save document",
			zap.String("documentID", doc.ID().String()),
			zap.Error(err))
		return pkgerrors.NewStorageError("save document", err)
	}

	return nil
}

// GetByID retrieves a document owned by the given user
func (r *DocumentRepository) GetByID(ctx context.Context, userID string, id valueobjects.DocumentID) (*entities.Document, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, idea_id, user_id, kind, payload, created_at
		FROM documents WHERE id = ? AND user_id = ?`,
		id.String(), userID,
	)

	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkgerrors.NewNotFoundError("document")
	}
	if err != nil {
		return nil, pkgerrors.NewStorageError("get document", err)
	}

	return doc, nil
}

// GetLatestByIdea retrieves the most recent document of a kind for an idea
func (r *DocumentRepository) GetLatestByIdea(ctx context.Context, ideaID valueobjects.IdeaID, kind entities.DocumentKind) (*entities.Document, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, idea_id, user_id, kind, payload, created_at
		FROM documents WHERE idea_id = ? AND kind = ?
		ORDER BY created_at DESC, rowid DESC LIMIT 1`,
		ideaID.String(), string(kind),
	)

	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkgerrors.NewNotFoundError("document")
	}
	if err != nil {
		return nil, pkgerrors.NewStorageError("get latest document", err)
	}

	return doc, nil
}

// ListByUser retrieves documents for a user, newest first
func (r *DocumentRepository) ListByUser(ctx context.Context, userID string, kind entities.DocumentKind, limit int) ([]*entities.Document, error) {
	query := `
		SELECT id, idea_id, user_id, kind, payload, created_at
		FROM documents WHERE user_id = ?`
	args := []interface{}{userID}

	if kind != "" {
		query += ` AND kind = ?`
		args = append(args, string(kind))
	}
	query += ` ORDER BY created_at DESC, rowid DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, pkgerrors.NewStorageError("list documents", err)
	}
	defer rows.Close()

	var docs []*entities.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			r.logger.Warn("failed to scan document row", zap.Error(err))
			continue
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, pkgerrors.NewStorageError("scan documents", err)
	}
	if docs == nil {
		docs = []*entities.Document{}
	}

	return docs, nil
}

// DeleteByIdea removes all documents attached to an idea
func (r *DocumentRepository) DeleteByIdea(ctx context.Context, ideaID valueobjects.IdeaID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE idea_id = ?`, ideaID.String())
	if err != nil {
		return pkgerrors.NewStorageError("delete documents", err)
	}

	return nil
}

// CountByUser returns the number of documents stored for a user
func (r *DocumentRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM documents WHERE user_id = ?`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, pkgerrors.NewStorageError("count documents", err)
	}

	return count, nil
}

func scanDocument(row rowScanner) (*entities.Document, error) {
	var (
		id, userID, kind, payload, createdAtStr string
		ideaIDStr                               sql.NullString
	)

	if err := row.Scan(&id, &ideaIDStr, &userID, &kind, &payload, &createdAtStr); err != nil {
		return nil, err
	}

	docID, err := valueobjects.NewDocumentIDFromString(id)
	if err != nil {
		return nil, err
	}

	var ideaID valueobjects.IdeaID
	if ideaIDStr.Valid {
		ideaID, err = valueobjects.NewIdeaIDFromString(ideaIDStr.String)
		if err != nil {
			return nil, err
		}
	}

	createdAt, _ := time.Parse(time.RFC3339Nano, createdAtStr)

	return entities.ReconstructDocument(
		docID,
		ideaID,
		userID,
		entities.DocumentKind(kind),
		json.RawMessage(payload),
		createdAt,
	)
}
