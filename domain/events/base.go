package events

import (
	"time"

	"ideaforge-backend/domain/core/valueobjects"
)

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

// Idea Events

// IdeaCreated is raised when a new idea is submitted
type IdeaCreated struct {
	BaseEvent
	IdeaID valueobjects.IdeaID `json:"idea_id"`
	UserID string              `json:"user_id"`
	Title  string              `json:"title"`
	Tags   []string            `json:"tags"`
}

// NewIdeaCreated creates an IdeaCreated event
func NewIdeaCreated(ideaID valueobjects.IdeaID, userID, title string, tags []string, timestamp time.Time) IdeaCreated {
	return IdeaCreated{
		BaseEvent: BaseEvent{
			AggregateID: ideaID.String(),
			EventType:   "idea.created",
			Timestamp:   timestamp,
			Version:     1,
		},
		IdeaID: ideaID,
		UserID: userID,
		Title:  title,
		Tags:   tags,
	}
}

// IdeaContentUpdated is raised when idea text is edited
type IdeaContentUpdated struct {
	BaseEvent
	IdeaID   valueobjects.IdeaID `json:"idea_id"`
	OldTitle string              `json:"old_title"`
	NewTitle string              `json:"new_title"`
}

// NewIdeaContentUpdated creates an IdeaContentUpdated event
func NewIdeaContentUpdated(ideaID valueobjects.IdeaID, oldTitle, newTitle string, timestamp time.Time) IdeaContentUpdated {
	return IdeaContentUpdated{
		BaseEvent: BaseEvent{
			AggregateID: ideaID.String(),
			EventType:   "idea.content_updated",
			Timestamp:   timestamp,
			Version:     1,
		},
		IdeaID:   ideaID,
		OldTitle: oldTitle,
		NewTitle: newTitle,
	}
}

// IdeaAnalyzed is raised when an idea transitions to the analyzed state
type IdeaAnalyzed struct {
	BaseEvent
	IdeaID     valueobjects.IdeaID     `json:"idea_id"`
	DocumentID valueobjects.DocumentID `json:"document_id"`
	Kind       string                  `json:"kind"`
}

// NewIdeaAnalyzed creates an IdeaAnalyzed event
func NewIdeaAnalyzed(ideaID valueobjects.IdeaID, documentID valueobjects.DocumentID, kind string, timestamp time.Time) IdeaAnalyzed {
	return IdeaAnalyzed{
		BaseEvent: BaseEvent{
			AggregateID: ideaID.String(),
			EventType:   "idea.analyzed",
			Timestamp:   timestamp,
			Version:     1,
		},
		IdeaID:     ideaID,
		DocumentID: documentID,
		Kind:       kind,
	}
}

// IdeaArchived is raised when an idea is archived
type IdeaArchived struct {
	BaseEvent
	IdeaID valueobjects.IdeaID `json:"idea_id"`
}

// NewIdeaArchived creates an IdeaArchived event
func NewIdeaArchived(ideaID valueobjects.IdeaID, timestamp time.Time) IdeaArchived {
	return IdeaArchived{
		BaseEvent: BaseEvent{
			AggregateID: ideaID.String(),
			EventType:   "idea.archived",
			Timestamp:   timestamp,
			Version:     1,
		},
		IdeaID: ideaID,
	}
}

// IdeaRestored is raised when an archived idea moves back to draft
type IdeaRestored struct {
	BaseEvent
	IdeaID valueobjects.IdeaID `json:"idea_id"`
}

// NewIdeaRestored creates an IdeaRestored event
func NewIdeaRestored(ideaID valueobjects.IdeaID, timestamp time.Time) IdeaRestored {
	return IdeaRestored{
		BaseEvent: BaseEvent{
			AggregateID: ideaID.String(),
			EventType:   "idea.restored",
			Timestamp:   timestamp,
			Version:     1,
		},
		IdeaID: ideaID,
	}
}

// IdeaDeletedEvent is raised when an idea is deleted
type IdeaDeletedEvent struct {
	BaseEvent
	IdeaID valueobjects.IdeaID `json:"idea_id"`
	UserID string              `json:"user_id"`
	Title  string              `json:"title"`
	Tags   []string            `json:"tags"`
}

// NewIdeaDeletedEvent creates an IdeaDeletedEvent
func NewIdeaDeletedEvent(ideaID valueobjects.IdeaID, userID, title string, tags []string, timestamp time.Time) IdeaDeletedEvent {
	return IdeaDeletedEvent{
		BaseEvent: BaseEvent{
			AggregateID: ideaID.String(),
			EventType:   "idea.deleted",
			Timestamp:   timestamp,
			Version:     1,
		},
		IdeaID: ideaID,
		UserID: userID,
		Title:  title,
		Tags:   tags,
	}
}

// Document Events

// DocumentSaved is raised when an analysis document is persisted
type DocumentSaved struct {
	BaseEvent
	DocumentID valueobjects.DocumentID `json:"document_id"`
	IdeaID     valueobjects.IdeaID     `json:"idea_id"`
	UserID     string                  `json:"user_id"`
	Kind       string                  `json:"kind"`
}

// NewDocumentSaved creates a DocumentSaved event
func NewDocumentSaved(documentID valueobjects.DocumentID, ideaID valueobjects.IdeaID, userID, kind string, timestamp time.Time) DocumentSaved {
	return DocumentSaved{
		BaseEvent: BaseEvent{
			AggregateID: documentID.String(),
			EventType:   "document.saved",
			Timestamp:   timestamp,
			Version:     1,
		},
		DocumentID: documentID,
		IdeaID:     ideaID,
		UserID:     userID,
		Kind:       kind,
	}
}

// FrankensteinIdeaCreated is raised when two concepts are combined into a new idea
type FrankensteinIdeaCreated struct {
	BaseEvent
	DocumentID  valueobjects.DocumentID `json:"document_id"`
	UserID      string                  `json:"user_id"`
	Ingredients [2]string               `json:"ingredients"`
}

// NewFrankensteinIdeaCreated creates a FrankensteinIdeaCreated event
func NewFrankensteinIdeaCreated(documentID valueobjects.DocumentID, userID string, ingredients [2]string, timestamp time.Time) FrankensteinIdeaCreated {
	return FrankensteinIdeaCreated{
		BaseEvent: BaseEvent{
			AggregateID: documentID.String(),
			EventType:   "frankenstein.created",
			Timestamp:   timestamp,
			Version:     1,
		},
		DocumentID:  documentID,
		UserID:      userID,
		Ingredients: ingredients,
	}
}
