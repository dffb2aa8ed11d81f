package entities

import (
	"fmt"
	"time"

	"ideaforge-backend/domain/config"
	"ideaforge-backend/domain/core/valueobjects"
	"ideaforge-backend/domain/events"
	pkgerrors "ideaforge-backend/pkg/errors"
)

// IdeaStatus represents the state of an idea
type IdeaStatus string

const (
	StatusDraft    IdeaStatus = "draft"
	StatusAnalyzed IdeaStatus = "analyzed"
	StatusArchived IdeaStatus = "archived"
)

// Idea is the main entity representing a submitted concept
// This is a rich domain model with encapsulated business logic
type Idea struct {
	// Private fields ensure encapsulation
	id        valueobjects.IdeaID
	userID    string
	content   valueobjects.IdeaContent
	tags      []string
	audioURL  string
	status    IdeaStatus
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
	version   int

	// Domain events that occurred during this aggregate's lifetime
	events []events.DomainEvent
}

// NewIdea creates a new idea with full business rule validation
func NewIdea(userID string, content valueobjects.IdeaContent) (*Idea, error) {
	return NewIdeaWithID(valueobjects.NewIdeaID(), userID, content)
}

// NewIdeaWithID creates a new idea with a caller-supplied identifier
func NewIdeaWithID(id valueobjects.IdeaID, userID string, content valueobjects.IdeaContent) (*Idea, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("idea ID cannot be empty")
	}

	if userID == "" {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}

	if content.IsEmpty() {
		return nil, pkgerrors.NewValidationError("content cannot be empty")
	}

	now := time.Now()
	idea := &Idea{
		id:        id,
		userID:    userID,
		content:   content,
		tags:      []string{},
		createdAt: now,
		updatedAt: now,
		version:   1,
		status:    StatusDraft,
		events:    []events.DomainEvent{},
	}

	idea.addEvent(events.NewIdeaCreated(idea.id, userID, content.Title(), []string{}, now))

	return idea, nil
}

// ReconstructIdea reconstructs an idea from repository data with preserved timestamps
func ReconstructIdea(
	id valueobjects.IdeaID,
	userID string,
	content valueobjects.IdeaContent,
	tags []string,
	audioURL string,
	status IdeaStatus,
	createdAt, updatedAt time.Time,
	deletedAt *time.Time,
) (*Idea, error) {
	if userID == "" {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}

	if content.IsEmpty() {
		return nil, pkgerrors.NewValidationError("content cannot be empty")
	}

	if tags == nil {
		tags = []string{}
	}

	idea := &Idea{
		id:        id,
		userID:    userID,
		content:   content,
		tags:      tags,
		audioURL:  audioURL,
		createdAt: createdAt,
		updatedAt: updatedAt,
		deletedAt: deletedAt,
		version:   1,
		status:    status,
		events:    []events.DomainEvent{},
	}

	return idea, nil
}

// ID returns the idea's unique identifier
func (i *Idea) ID() valueobjects.IdeaID {
	return i.id
}

// UserID returns the owner's ID
func (i *Idea) UserID() string {
	return i.userID
}

// Content returns the idea's content
func (i *Idea) Content() valueobjects.IdeaContent {
	return i.content
}

// Status returns the idea's current status
func (i *Idea) Status() IdeaStatus {
	return i.status
}

// Version returns the idea's version for optimistic locking
func (i *Idea) Version() int {
	return i.version
}

// AudioURL returns the attached voice memo location, empty when none
func (i *Idea) AudioURL() string {
	return i.audioURL
}

// IsDeleted reports whether the idea has been soft-deleted
func (i *Idea) IsDeleted() bool {
	return i.deletedAt != nil
}

// DeletedAt returns the soft-delete timestamp, nil when the idea is live
func (i *Idea) DeletedAt() *time.Time {
	return i.deletedAt
}

// UpdateContent updates the idea's content with validation
func (i *Idea) UpdateContent(content valueobjects.IdeaContent) error {
	if i.status == StatusArchived {
		return pkgerrors.NewValidationError("cannot update archived idea")
	}

	if i.IsDeleted() {
		return pkgerrors.NewValidationError("cannot update deleted idea")
	}

	if content.IsEmpty() {
		return pkgerrors.NewValidationError("content cannot be empty")
	}

	if content.Equals(i.content) {
		return nil // No change needed
	}

	oldContent := i.content
	i.content = content
	i.updatedAt = time.Now()
	i.version++

	// Editing the text invalidates a previous analysis
	if i.status == StatusAnalyzed {
		i.status = StatusDraft
	}

	i.addEvent(events.NewIdeaContentUpdated(i.id, oldContent.Title(), content.Title(), i.updatedAt))

	return nil
}

// MarkAnalyzed records that an analysis document exists for this idea
func (i *Idea) MarkAnalyzed(documentID valueobjects.DocumentID, kind string) error {
	if i.status == StatusArchived {
		return pkgerrors.NewValidationError("cannot analyze archived idea")
	}

	if i.IsDeleted() {
		return pkgerrors.NewValidationError("cannot analyze deleted idea")
	}

	i.status = StatusAnalyzed
	i.updatedAt = time.Now()
	i.version++

	i.addEvent(events.NewIdeaAnalyzed(i.id, documentID, kind, i.updatedAt))

	return nil
}

// Archive moves the idea to archived status
func (i *Idea) Archive() error {
	if i.status == StatusArchived {
		return nil // Already archived
	}

	i.status = StatusArchived
	i.updatedAt = time.Now()
	i.version++

	i.addEvent(events.NewIdeaArchived(i.id, i.updatedAt))

	return nil
}

// Restore moves an archived idea back to draft so it can be edited again
func (i *Idea) Restore() error {
	if i.IsDeleted() {
		return pkgerrors.NewValidationError("cannot restore deleted idea")
	}

	if i.status != StatusArchived {
		return nil // Nothing to restore
	}

	i.status = StatusDraft
	i.updatedAt = time.Now()
	i.version++

	i.addEvent(events.NewIdeaRestored(i.id, i.updatedAt))

	return nil
}

// SoftDelete marks the idea as deleted without removing the record
func (i *Idea) SoftDelete() error {
	if i.IsDeleted() {
		return nil // Already deleted
	}

	now := time.Now()
	i.deletedAt = &now
	i.updatedAt = now
	i.version++

	i.addEvent(events.NewIdeaDeletedEvent(i.id, i.userID, i.content.Title(), i.GetTags(), now))

	return nil
}

// AttachAudio records the location of an uploaded voice memo
func (i *Idea) AttachAudio(url string) error {
	if url == "" {
		return pkgerrors.NewValidationError("audio URL cannot be empty")
	}

	if i.IsDeleted() {
		return pkgerrors.NewValidationError("cannot attach audio to deleted idea")
	}

	i.audioURL = url
	i.updatedAt = time.Now()

	return nil
}

// AddTag adds a tag to the idea
func (i *Idea) AddTag(tag string) error {
	return i.AddTagWithConfig(tag, config.DefaultDomainConfig())
}

// AddTagWithConfig adds a tag to the idea with configuration
func (i *Idea) AddTagWithConfig(tag string, cfg *config.DomainConfig) error {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}

	if tag == "" {
		return pkgerrors.NewValidationError("tag cannot be empty")
	}

	// Check for duplicate
	for _, t := range i.tags {
		if t == tag {
			return nil // Tag already exists
		}
	}

	// Check tag limit
	if len(i.tags) >= cfg.MaxTagsPerIdea {
		return fmt.Errorf("maximum tags reached: %d", cfg.MaxTagsPerIdea)
	}

	i.tags = append(i.tags, tag)
	i.updatedAt = time.Now()

	// Update the IdeaCreated event with the new tags
	for idx, event := range i.events {
		if created, ok := event.(events.IdeaCreated); ok {
			created.Tags = i.GetTags()
			i.events[idx] = created
			break
		}
	}

	return nil
}

// RemoveTag removes a tag from the idea
func (i *Idea) RemoveTag(tag string) error {
	newTags := []string{}
	found := false

	for _, t := range i.tags {
		if t != tag {
			newTags = append(newTags, t)
		} else {
			found = true
		}
	}

	if !found {
		return pkgerrors.NewNotFoundError("tag")
	}

	i.tags = newTags
	i.updatedAt = time.Now()

	return nil
}

// GetTags returns all tags
func (i *Idea) GetTags() []string {
	// Return a copy to maintain encapsulation
	tags := make([]string, len(i.tags))
	copy(tags, i.tags)
	return tags
}

// CreatedAt returns when the idea was created
func (i *Idea) CreatedAt() time.Time {
	return i.createdAt
}

// UpdatedAt returns when the idea was last updated
func (i *Idea) UpdatedAt() time.Time {
	return i.updatedAt
}

// GetUncommittedEvents returns all uncommitted domain events
func (i *Idea) GetUncommittedEvents() []events.DomainEvent {
	return i.events
}

// MarkEventsAsCommitted clears the uncommitted events
func (i *Idea) MarkEventsAsCommitted() {
	i.events = []events.DomainEvent{}
}

// addEvent adds a domain event to the uncommitted list
func (i *Idea) addEvent(event events.DomainEvent) {
	i.events = append(i.events, event)
}
