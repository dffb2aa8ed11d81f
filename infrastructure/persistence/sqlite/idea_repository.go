package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"ideaforge-backend/application/ports"
	"ideaforge-backend/domain/core/entities"
	"ideaforge-backend/domain/core/valueobjects"
	pkgerrors "ideaforge-backend/pkg/errors"

	"go.uber.org/zap"
)

// IdeaRepository implements ports.IdeaRepository on the local SQLite store.
type IdeaRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewIdeaRepository creates a new IdeaRepository
func NewIdeaRepository(store *Store, logger *zap.Logger) ports.IdeaRepository {
	return &IdeaRepository{
		db:     store.DB(),
		logger: logger,
	}
}

// Save persists an idea (create or update)
func (r *IdeaRepository) Save(ctx context.Context, idea *entities.Idea) error {
	tags, err := json.Marshal(idea.GetTags())
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}

	var deletedAt interface{}
	if idea.DeletedAt() != nil {
		deletedAt = idea.DeletedAt().UTC().Format(timeLayout)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO ideas (id, user_id, title, body, tags, audio_url, status, version, created_at, updated_at, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			body = excluded.body,
			tags = excluded.tags,
			audio_url = excluded.audio_url,
			status = excluded.status,
			version = excluded.version,
			updated_at = excluded.updated_at,
			deleted_at = excluded.deleted_at`,
		idea.ID().String(),
		idea.UserID(),
		idea.Content().Title(),
		idea.Content().Body(),
		string(tags),
		idea.AudioURL(),
		string(idea.Status()),
		idea.Version(),
		idea.CreatedAt().UTC().Format(timeLayout),
		idea.UpdatedAt().UTC().Format(timeLayout),
		deletedAt,
	)
	if err != nil {
		r.logger.Error("failed to save idea",
			zap.String("ideaID", idea.ID().String()),
			zap.Error(err))
		return pkgerrors.NewStorageError("save idea", err)
	}

	return nil
}

// GetByID retrieves an idea by its ID
func (r *IdeaRepository) GetByID(ctx context.Context, id valueobjects.IdeaID) (*entities.Idea, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, title, body, tags, audio_url, status, created_at, updated_at, deleted_at
		FROM ideas WHERE id = ?`,
		id.String(),
	)

	idea, err := scanIdea(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkgerrors.NewNotFoundError("idea")
	}
	if err != nil {
		return nil, pkgerrors.NewStorageError("get idea", err)
	}

	return idea, nil
}

// GetByUserID retrieves all live ideas for a user, newest first
func (r *IdeaRepository) GetByUserID(ctx context.Context, userID string) ([]*entities.Idea, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, title, body, tags, audio_url, status, created_at, updated_at, deleted_at
		FROM ideas WHERE user_id = ? AND deleted_at IS NULL
		ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, pkgerrors.NewStorageError("list ideas", err)
	}
	defer rows.Close()

	return r.collectIdeas(rows)
}

// Delete removes an idea permanently
func (r *IdeaRepository) Delete(ctx context.Context, id valueobjects.IdeaID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM ideas WHERE id = ?`, id.String())
	if err != nil {
		return pkgerrors.NewStorageError("delete idea", err)
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return pkgerrors.NewNotFoundError("idea")
	}

	return nil
}

// Search finds ideas matching the given criteria
func (r *IdeaRepository) Search(ctx context.Context, criteria ports.SearchCriteria) ([]*entities.Idea, error) {
	var (
		conditions = []string{"user_id = ?", "deleted_at IS NULL"}
		args       = []interface{}{criteria.UserID}
	)

	if criteria.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, criteria.Status)
	}
	if criteria.Query != "" {
		conditions = append(conditions, "(title LIKE ? OR body LIKE ?)")
		pattern := "%" + criteria.Query + "%"
		args = append(args, pattern, pattern)
	}

	order := "DESC"
	if !criteria.OrderDesc {
		order = "ASC"
	}
	orderBy := "created_at"
	if criteria.OrderBy == "updated_at" {
		orderBy = "updated_at"
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, title, body, tags, audio_url, status, created_at, updated_at, deleted_at
		FROM ideas WHERE %s
		ORDER BY %s %s`,
		strings.Join(conditions, " AND "), orderBy, order,
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, pkgerrors.NewStorageError("search ideas", err)
	}
	defer rows.Close()

	ideas, err := r.collectIdeas(rows)
	if err != nil {
		return nil, err
	}

	// Tag filtering happens after the scan since tags are stored as JSON
	if len(criteria.Tags) > 0 {
		filtered := ideas[:0]
		for _, idea := range ideas {
			if hasAnyTag(idea.GetTags(), criteria.Tags) {
				filtered = append(filtered, idea)
			}
		}
		ideas = filtered
	}

	if criteria.Offset > 0 {
		if criteria.Offset >= len(ideas) {
			return []*entities.Idea{}, nil
		}
		ideas = ideas[criteria.Offset:]
	}
	if criteria.Limit > 0 && criteria.Limit < len(ideas) {
		ideas = ideas[:criteria.Limit]
	}

	return ideas, nil
}

// CountByUserID returns the number of live ideas for a user
func (r *IdeaRepository) CountByUserID(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM ideas WHERE user_id = ? AND deleted_at IS NULL`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, pkgerrors.NewStorageError("count ideas", err)
	}

	return count, nil
}

func (r *IdeaRepository) collectIdeas(rows *sql.Rows) ([]*entities.Idea, error) {
	var ideas []*entities.Idea
	for rows.Next() {
		idea, err := scanIdea(rows)
		if err != nil {
			r.logger.Warn("failed to scan idea row", zap.Error(err))
			continue
		}
		ideas = append(ideas, idea)
	}
	if err := rows.Err(); err != nil {
		return nil, pkgerrors.NewStorageError("scan ideas", err)
	}
	if ideas == nil {
		ideas = []*entities.Idea{}
	}

	return ideas, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanIdea(row rowScanner) (*entities.Idea, error) {
	var (
		id, userID, title, body, tagsJSON, status string
		audioURL, deletedAtStr                    sql.NullString
		createdAtStr, updatedAtStr                string
	)

	err := row.Scan(&id, &userID, &title, &body, &tagsJSON, &audioURL, &status, &createdAtStr, &updatedAtStr, &deletedAtStr)
	if err != nil {
		return nil, err
	}

	ideaID, err := valueobjects.NewIdeaIDFromString(id)
	if err != nil {
		return nil, err
	}

	content, err := valueobjects.NewIdeaContent(title, body)
	if err != nil {
		return nil, err
	}

	var tags []string
	if err := json.Unmarshal([]byte(tagsJSON), &tags); err != nil {
		tags = []string{}
	}

	createdAt, _ := time.Parse(time.RFC3339Nano, createdAtStr)
	updatedAt, _ := time.Parse(time.RFC3339Nano, updatedAtStr)

	var deletedAt *time.Time
	if deletedAtStr.Valid {
		if t, err := time.Parse(time.RFC3339Nano, deletedAtStr.String); err == nil {
			deletedAt = &t
		}
	}

	return entities.ReconstructIdea(
		ideaID,
		userID,
		content,
		tags,
		audioURL.String,
		entities.IdeaStatus(status),
		createdAt,
		updatedAt,
		deletedAt,
	)
}

func hasAnyTag(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}
