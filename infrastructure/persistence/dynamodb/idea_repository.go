package dynamodb

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"ideaforge-backend/application/ports"
	"ideaforge-backend/domain/core/entities"
	"ideaforge-backend/domain/core/valueobjects"
	pkgerrors "ideaforge-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// IdeaRepository implements ports.IdeaRepository using DynamoDB
type IdeaRepository struct {
	client    *dynamodb.Client
	tableName string
	indexName string
	logger    *zap.Logger
}

// NewIdeaRepository creates a new IdeaRepository
func NewIdeaRepository(client *dynamodb.Client, tableName, indexName string, logger *zap.Logger) ports.IdeaRepository {
	return &IdeaRepository{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		logger:    logger,
	}
}

// ideaItem represents the DynamoDB item structure for an idea
type ideaItem struct {
	PK         string   `dynamodbav:"PK"`
	SK         string   `dynamodbav:"SK"`
	GSI1PK     string   `dynamodbav:"GSI1PK"`
	GSI1SK     string   `dynamodbav:"GSI1SK"`
	EntityType string   `dynamodbav:"EntityType"`
	IdeaID     string   `dynamodbav:"IdeaID"`
	UserID     string   `dynamodbav:"UserID"`
	Title      string   `dynamodbav:"Title"`
	Body       string   `dynamodbav:"Body"`
	Status     string   `dynamodbav:"Status"`
	Tags       []string `dynamodbav:"Tags,omitempty"`
	AudioURL   string   `dynamodbav:"AudioURL,omitempty"`
	CreatedAt  string   `dynamodbav:"CreatedAt"`
	UpdatedAt  string   `dynamodbav:"UpdatedAt"`
	DeletedAt  string   `dynamodbav:"DeletedAt,omitempty"`
	Version    int      `dynamodbav:"Version"`
}

func ideaPK(userID string) string { return fmt.Sprintf("USER#%s", userID) }
func ideaSK(id string) string     { return fmt.Sprintf("IDEA#%s", id) }

// Save persists an idea to DynamoDB
func (r *IdeaRepository) Save(ctx context.Context, idea *entities.Idea) error {
	item := ideaItem{
		PK:         ideaPK(idea.UserID()),
		SK:         ideaSK(idea.ID().String()),
		GSI1PK:     fmt.Sprintf("IDEAID#%s", idea.ID().String()),
		GSI1SK:     "METADATA",
		EntityType: "IDEA",
		IdeaID:     idea.ID().String(),
		UserID:     idea.UserID(),
		Title:      idea.Content().Title(),
		Body:       idea.Content().Body(),
		Status:     string(idea.Status()),
		Tags:       idea.GetTags(),
		AudioURL:   idea.AudioURL(),
		CreatedAt:  idea.CreatedAt().UTC().Format(time.RFC3339),
		UpdatedAt:  idea.UpdatedAt().UTC().Format(time.RFC3339),
		Version:    idea.Version(),
	}
	if idea.DeletedAt() != nil {
		item.DeletedAt = idea.DeletedAt().UTC().Format(time.RFC3339)
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal idea: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		r.logger.Error("failed to save idea",
			zap.String("ideaID", idea.ID().String()),
			zap.Error(err))
		return pkgerrors.NewStorageError("save idea", err)
	}

	return nil
}

// GetByID retrieves an idea by its ID via the GSI
func (r *IdeaRepository) GetByID(ctx context.Context, id valueobjects.IdeaID) (*entities.Idea, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(r.indexName),
		KeyConditionExpression: aws.String("GSI1PK = :pk AND GSI1SK = :sk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: fmt.Sprintf("IDEAID#%s", id.String())},
			":sk": &types.AttributeValueMemberS{Value: "METADATA"},
		},
		Limit: aws.Int32(1),
	}

	result, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, pkgerrors.NewStorageError("get idea", err)
	}

	if len(result.Items) == 0 {
		return nil, pkgerrors.NewNotFoundError("idea")
	}

	var item ideaItem
	if err := attributevalue.UnmarshalMap(result.Items[0], &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal idea: %w", err)
	}

	return itemToIdea(item)
}

// GetByUserID retrieves all live ideas for a user
func (r *IdeaRepository) GetByUserID(ctx context.Context, userID string) ([]*entities.Idea, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :sk)"),
		FilterExpression:       aws.String("attribute_not_exists(DeletedAt)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: ideaPK(userID)},
			":sk": &types.AttributeValueMemberS{Value: "IDEA#"},
		},
	}

	result, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, pkgerrors.NewStorageError("list ideas", err)
	}

	ideas := make([]*entities.Idea, 0, len(result.Items))
	for _, raw := range result.Items {
		var item ideaItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			r.logger.Warn("failed to unmarshal idea item", zap.Error(err))
			continue
		}
		idea, err := itemToIdea(item)
		if err != nil {
			r.logger.Warn("failed to reconstruct idea",
				zap.String("ideaID", item.IdeaID),
				zap.Error(err))
			continue
		}
		ideas = append(ideas, idea)
	}

	// Newest first
	sort.Slice(ideas, func(i, j int) bool {
		return ideas[i].CreatedAt().After(ideas[j].CreatedAt())
	})

	return ideas, nil
}

// Delete removes an idea
func (r *IdeaRepository) Delete(ctx context.Context, id valueobjects.IdeaID) error {
	// The primary key needs the owner, resolve it first
	idea, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	input := &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: ideaPK(idea.UserID())},
			"SK": &types.AttributeValueMemberS{Value: ideaSK(id.String())},
		},
	}

	if _, err := r.client.DeleteItem(ctx, input); err != nil {
		return pkgerrors.NewStorageError("delete idea", err)
	}

	return nil
}

// Search finds ideas matching the given criteria
func (r *IdeaRepository) Search(ctx context.Context, criteria ports.SearchCriteria) ([]*entities.Idea, error) {
	ideas, err := r.GetByUserID(ctx, criteria.UserID)
	if err != nil {
		return nil, err
	}

	filtered := make([]*entities.Idea, 0, len(ideas))
	for _, idea := range ideas {
		if criteria.Status != "" && string(idea.Status()) != criteria.Status {
			continue
		}
		if len(criteria.Tags) > 0 && !hasAnyTag(idea.GetTags(), criteria.Tags) {
			continue
		}
		if criteria.Query != "" && !matchesQuery(idea, criteria.Query) {
			continue
		}
		filtered = append(filtered, idea)
	}

	if !criteria.OrderDesc {
		sort.Slice(filtered, func(i, j int) bool {
			return filtered[i].CreatedAt().Before(filtered[j].CreatedAt())
		})
	}

	// Apply offset and limit after filtering
	if criteria.Offset >= len(filtered) {
		return []*entities.Idea{}, nil
	}
	filtered = filtered[criteria.Offset:]
	if criteria.Limit > 0 && criteria.Limit < len(filtered) {
		filtered = filtered[:criteria.Limit]
	}

	return filtered, nil
}

// CountByUserID returns the number of live ideas for a user
func (r *IdeaRepository) CountByUserID(ctx context.Context, userID string) (int, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :sk)"),
		FilterExpression:       aws.String("attribute_not_exists(DeletedAt)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: ideaPK(userID)},
			":sk": &types.AttributeValueMemberS{Value: "IDEA#"},
		},
		Select: types.SelectCount,
	}

	result, err := r.client.Query(ctx, input)
	if err != nil {
		return 0, pkgerrors.NewStorageError("count ideas", err)
	}

	return int(result.Count), nil
}

// itemToIdea reconstructs the domain entity from a table item
func itemToIdea(item ideaItem) (*entities.Idea, error) {
	id, err := valueobjects.NewIdeaIDFromString(item.IdeaID)
	if err != nil {
		return nil, err
	}

	content, err := valueobjects.NewIdeaContent(item.Title, item.Body)
	if err != nil {
		return nil, err
	}

	createdAt, _ := time.Parse(time.RFC3339, item.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339, item.UpdatedAt)

	var deletedAt *time.Time
	if item.DeletedAt != "" {
		if t, err := time.Parse(time.RFC3339, item.DeletedAt); err == nil {
			deletedAt = &t
		}
	}

	return entities.ReconstructIdea(
		id,
		item.UserID,
		content,
		item.Tags,
		item.AudioURL,
		entities.IdeaStatus(item.Status),
		createdAt,
		updatedAt,
		deletedAt,
	)
}

func hasAnyTag(have, want []string) bool {
	set := make(map[string]bool, len(have))
	for _, t := range have {
		set[t] = true
	}
	for _, t := range want {
		if set[t] {
			return true
		}
	}
	return false
}

func matchesQuery(idea *entities.Idea, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(idea.Content().Title()), q) ||
		strings.Contains(strings.ToLower(idea.Content().Body()), q)
}
