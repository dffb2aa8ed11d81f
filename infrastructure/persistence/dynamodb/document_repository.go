package dynamodb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
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

// DocumentRepository implements ports.DocumentRepository using DynamoDB.
// Documents live in the same single table as ideas. Analyses written before
// the single-table migration sit in a separate legacy table, which is
// consulted as a read-only fallback.
type DocumentRepository struct {
	client      *dynamodb.Client
	tableName   string
	legacyTable string
	indexName   string
	logger      *zap.Logger
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(client *dynamodb.Client, tableName, legacyTable, indexName string, logger *zap.Logger) ports.DocumentRepository {
	return &DocumentRepository{
		client:      client,
		tableName:   tableName,
		legacyTable: legacyTable,
		indexName:   indexName,
		logger:      logger,
	}
}

// documentItem represents the DynamoDB item structure for a document
type documentItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	GSI1PK     string `dynamodbav:"GSI1PK,omitempty"`
	GSI1SK     string `dynamodbav:"GSI1SK,omitempty"`
	EntityType string `dynamodbav:"EntityType"`
	DocumentID string `dynamodbav:"DocumentID"`
	IdeaID     string `dynamodbav:"IdeaID,omitempty"`
	UserID     string `dynamodbav:"UserID"`
	Kind       string `dynamodbav:"Kind"`
	Payload    string `dynamodbav:"Payload"`
	CreatedAt  string `dynamodbav:"CreatedAt"`
}

// legacyItem is the pre-migration analysis record layout
type legacyItem struct {
	IdeaID    string `dynamodbav:"IdeaId"`
	UserID    string `dynamodbav:"UserId"`
	Analysis  string `dynamodbav:"Analysis"`
	CreatedAt string `dynamodbav:"CreatedAt"`
}

func docPK(userID string) string { return fmt.Sprintf("USER#%s", userID) }
func docSK(id string) string     { return fmt.Sprintf("DOC#%s", id) }

// Save persists a document
func (r *DocumentRepository) Save(ctx context.Context, doc *entities.Document) error {
	item := documentItem{
		PK:         docPK(doc.UserID()),
		SK:         docSK(doc.ID().String()),
		EntityType: "DOCUMENT",
		DocumentID: doc.ID().String(),
		UserID:     doc.UserID(),
		Kind:       string(doc.Kind()),
		Payload:    string(doc.Payload()),
		CreatedAt:  doc.CreatedAt().UTC().Format(time.RFC3339),
	}
	if !doc.IdeaID().IsZero() {
		item.IdeaID = doc.IdeaID().String()
		item.GSI1PK = fmt.Sprintf("IDEADOC#%s", doc.IdeaID().String())
		item.GSI1SK = fmt.Sprintf("DOC#%s#%s", doc.Kind(), item.CreatedAt)
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return pkgerrors.NewConflictError("document already exists")
		}
		r.logger.Error("failed to save document",
			zap.String("documentID", doc.ID().String()),
			zap.Error(err))
		return pkgerrors.NewStorageError("save document", err)
	}

	return nil
}

// GetByID retrieves a document owned by the given user
func (r *DocumentRepository) GetByID(ctx context.Context, userID string, id valueobjects.DocumentID) (*entities.Document, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: docPK(userID)},
			"SK": &types.AttributeValueMemberS{Value: docSK(id.String())},
		},
	}

	result, err := r.client.GetItem(ctx, input)
	if err != nil {
		return nil, pkgerrors.NewStorageError("get document", err)
	}

	if result.Item == nil {
		return nil, pkgerrors.NewNotFoundError("document")
	}

	var item documentItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}

	return itemToDocument(item)
}

// GetLatestByIdea retrieves the most recent document of a kind for an idea.
// When nothing is found in the main table, the legacy analysis table is
// consulted before giving up.
func (r *DocumentRepository) GetLatestByIdea(ctx context.Context, ideaID valueobjects.IdeaID, kind entities.DocumentKind) (*entities.Document, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(r.indexName),
		KeyConditionExpression: aws.String("GSI1PK = :pk AND begins_with(GSI1SK, :sk)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: fmt.Sprintf("IDEADOC#%s", ideaID.String())},
			":sk": &types.AttributeValueMemberS{Value: fmt.Sprintf("DOC#%s#", kind)},
		},
		ScanIndexForward: aws.Bool(false), // newest first
		Limit:            aws.Int32(1),
	}

	result, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, pkgerrors.NewStorageError("get latest document", err)
	}

	if len(result.Items) > 0 {
		var item documentItem
		if err := attributevalue.UnmarshalMap(result.Items[0], &item); err != nil {
			return nil, fmt.Errorf("failed to unmarshal document: %w", err)
		}
		return itemToDocument(item)
	}

	// Fall back to the legacy table for analyses written before the migration
	if kind == entities.KindAnalysis && r.legacyTable != "" {
		return r.getLegacyAnalysis(ctx, ideaID)
	}

	return nil, pkgerrors.NewNotFoundError("document")
}

// getLegacyAnalysis reads the pre-migration analysis record for an idea
func (r *DocumentRepository) getLegacyAnalysis(ctx context.Context, ideaID valueobjects.IdeaID) (*entities.Document, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(r.legacyTable),
		Key: map[string]types.AttributeValue{
			"IdeaId": &types.AttributeValueMemberS{Value: ideaID.String()},
		},
	}

	result, err := r.client.GetItem(ctx, input)
	if err != nil {
		return nil, pkgerrors.NewStorageError("get legacy analysis", err)
	}

	if result.Item == nil {
		return nil, pkgerrors.NewNotFoundError("document")
	}

	var item legacyItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal legacy analysis: %w", err)
	}

	if !json.Valid([]byte(item.Analysis)) {
		return nil, pkgerrors.NewStorageError("get legacy analysis", fmt.Errorf("corrupt legacy payload for idea %s", ideaID.String()))
	}

	r.logger.Info("served analysis from legacy table",
		zap.String("ideaID", ideaID.String()))

	createdAt, _ := time.Parse(time.RFC3339, item.CreatedAt)
	return entities.ReconstructDocument(
		valueobjects.NewDocumentID(), // legacy rows predate document IDs
		ideaID,
		item.UserID,
		entities.KindAnalysis,
		json.RawMessage(item.Analysis),
		createdAt,
	)
}

// ListByUser retrieves documents for a user, newest first
func (r *DocumentRepository) ListByUser(ctx context.Context, userID string, kind entities.DocumentKind, limit int) ([]*entities.Document, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :sk)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: docPK(userID)},
			":sk": &types.AttributeValueMemberS{Value: "DOC#"},
		},
	}
	if kind != "" {
		input.FilterExpression = aws.String("Kind = :kind")
		input.ExpressionAttributeValues[":kind"] = &types.AttributeValueMemberS{Value: string(kind)}
	}

	result, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, pkgerrors.NewStorageError("list documents", err)
	}

	docs := make([]*entities.Document, 0, len(result.Items))
	for _, raw := range result.Items {
		var item documentItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			r.logger.Warn("failed to unmarshal document item", zap.Error(err))
			continue
		}
		doc, err := itemToDocument(item)
		if err != nil {
			r.logger.Warn("failed to reconstruct document",
				zap.String("documentID", item.DocumentID),
				zap.Error(err))
			continue
		}
		docs = append(docs, doc)
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].CreatedAt().After(docs[j].CreatedAt())
	})

	if limit > 0 && limit < len(docs) {
		docs = docs[:limit]
	}

	return docs, nil
}

// DeleteByIdea removes all documents attached to an idea
func (r *DocumentRepository) DeleteByIdea(ctx context.Context, ideaID valueobjects.IdeaID) error {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(r.indexName),
		KeyConditionExpression: aws.String("GSI1PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: fmt.Sprintf("IDEADOC#%s", ideaID.String())},
		},
	}

	result, err := r.client.Query(ctx, input)
	if err != nil {
		return pkgerrors.NewStorageError("query documents for delete", err)
	}

	for _, raw := range result.Items {
		var item documentItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			continue
		}
		del := &dynamodb.DeleteItemInput{
			TableName: aws.String(r.tableName),
			Key: map[string]types.AttributeValue{
				"PK": &types.AttributeValueMemberS{Value: item.PK},
				"SK": &types.AttributeValueMemberS{Value: item.SK},
			},
		}
		if _, err := r.client.DeleteItem(ctx, del); err != nil {
			r.logger.Error("failed to delete document",
				zap.String("documentID", item.DocumentID),
				zap.Error(err))
			// Keep going, leftover documents are cleaned up on retry
		}
	}

	return nil
}

// CountByUser returns the number of documents stored for a user
func (r *DocumentRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :sk)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: docPK(userID)},
			":sk": &types.AttributeValueMemberS{Value: "DOC#"},
		},
		Select: types.SelectCount,
	}

	result, err := r.client.Query(ctx, input)
	if err != nil {
		return 0, pkgerrors.NewStorageError("count documents", err)
	}

	return int(result.Count), nil
}

// itemToDocument reconstructs the domain entity from a table item
func itemToDocument(item documentItem) (*entities.Document, error) {
	id, err := valueobjects.NewDocumentIDFromString(item.DocumentID)
	if err != nil {
		return nil, err
	}

	var ideaID valueobjects.IdeaID
	if item.IdeaID != "" {
		ideaID, err = valueobjects.NewIdeaIDFromString(item.IdeaID)
		if err != nil {
			return nil, err
		}
	}

	createdAt, _ := time.Parse(time.RFC3339, item.CreatedAt)

	return entities.ReconstructDocument(
		id,
		ideaID,
		item.UserID,
		entities.DocumentKind(item.Kind),
		json.RawMessage(item.Payload),
		createdAt,
	)
}
