package entities

import (
	"encoding/json"
	"fmt"
	"time"

	"ideaforge-backend/domain/config"
	"ideaforge-backend/domain/core/valueobjects"
	"ideaforge-backend/domain/events"
	pkgerrors "ideaforge-backend/pkg/errors"
)

// DocumentKind discriminates the payload stored in a document
type DocumentKind string

const (
	KindAnalysis     DocumentKind = "analysis"
	KindHackathon    DocumentKind = "hackathon"
	KindFrankenstein DocumentKind = "frankenstein"
)

// Document is an immutable record of a generated analysis
// Documents are written once and never modified afterwards
type Document struct {
	id        valueobjects.DocumentID
	ideaID    valueobjects.IdeaID
	userID    string
	kind      DocumentKind
	payload   json.RawMessage
	createdAt time.Time

	events []events.DomainEvent
}

// NewDocument creates a new document with validation
func NewDocument(userID string, ideaID valueobjects.IdeaID, kind DocumentKind, payload json.RawMessage) (*Document, error) {
	return NewDocumentWithID(valueobjects.NewDocumentID(), userID, ideaID, kind, payload, config.DefaultDomainConfig())
}

// NewDocumentWithID creates a new document with a caller-supplied identifier
func NewDocumentWithID(id valueobjects.DocumentID, userID string, ideaID valueobjects.IdeaID, kind DocumentKind, payload json.RawMessage, cfg *config.DomainConfig) (*Document, error) {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}

	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("document ID cannot be empty")
	}

	if userID == "" {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}

	if !isValidKind(kind) {
		return nil, pkgerrors.NewValidationError("invalid document kind")
	}

	// Frankenstein documents stand alone; the other kinds belong to an idea
	if kind != KindFrankenstein && ideaID.IsZero() {
		return nil, pkgerrors.NewValidationError("ideaID is required for this document kind")
	}

	if len(payload) == 0 {
		return nil, pkgerrors.NewValidationError("payload cannot be empty")
	}

	if !json.Valid(payload) {
		return nil, pkgerrors.NewValidationError("payload must be valid JSON")
	}

	if len(payload) > cfg.MaxDocumentBytes {
		return nil, fmt.Errorf("payload exceeds maximum size of %d bytes", cfg.MaxDocumentBytes)
	}

	now := time.Now()
	doc := &Document{
		id:        id,
		ideaID:    ideaID,
		userID:    userID,
		kind:      kind,
		payload:   payload,
		createdAt: now,
		events:    []events.DomainEvent{},
	}

	doc.addEvent(events.NewDocumentSaved(doc.id, ideaID, userID, string(kind), now))

	return doc, nil
}

// ReconstructDocument reconstructs a document from repository data
func ReconstructDocument(
	id valueobjects.DocumentID,
	ideaID valueobjects.IdeaID,
	userID string,
	kind DocumentKind,
	payload json.RawMessage,
	createdAt time.Time,
) (*Document, error) {
	if userID == "" {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}

	if !isValidKind(kind) {
		return nil, pkgerrors.NewValidationError("invalid document kind")
	}

	return &Document{
		id:        id,
		ideaID:    ideaID,
		userID:    userID,
		kind:      kind,
		payload:   payload,
		createdAt: createdAt,
		events:    []events.DomainEvent{},
	}, nil
}

// ID returns the document's unique identifier
func (d *Document) ID() valueobjects.DocumentID {
	return d.id
}

// IdeaID returns the owning idea's identifier, zero for frankenstein documents
func (d *Document) IdeaID() valueobjects.IdeaID {
	return d.ideaID
}

// UserID returns the owner's ID
func (d *Document) UserID() string {
	return d.userID
}

// Kind returns the document kind
func (d *Document) Kind() DocumentKind {
	return d.kind
}

// Payload returns the stored JSON payload
func (d *Document) Payload() json.RawMessage {
	// Return a copy to maintain encapsulation
	payload := make(json.RawMessage, len(d.payload))
	copy(payload, d.payload)
	return payload
}

// CreatedAt returns when the document was created
func (d *Document) CreatedAt() time.Time {
	return d.createdAt
}

// GetUncommittedEvents returns all uncommitted domain events
func (d *Document) GetUncommittedEvents() []events.DomainEvent {
	return d.events
}

// MarkEventsAsCommitted clears the uncommitted events
func (d *Document) MarkEventsAsCommitted() {
	d.events = []events.DomainEvent{}
}

func (d *Document) addEvent(event events.DomainEvent) {
	d.events = append(d.events, event)
}

func isValidKind(kind DocumentKind) bool {
	switch kind {
	case KindAnalysis, KindHackathon, KindFrankenstein:
		return true
	default:
		return false
	}
}
