package commands

import (
	"errors"
	"unicode/utf8"
)

// Statuses a client may request through an update. Analyzed is derived from
// saved documents and cannot be set directly.
const (
	StatusDraft    = "draft"
	StatusArchived = "archived"
)

// UpdateIdeaCommand represents the command to edit an existing idea
type UpdateIdeaCommand struct {
	UserID   string    `json:"user_id" validate:"required"`
	IdeaID   string    `json:"idea_id" validate:"required,uuid"`
	Title    *string   `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Body     *string   `json:"body,omitempty" validate:"omitempty,max=20000"`
	Tags     *[]string `json:"tags,omitempty" validate:"omitempty,max=20,dive,min=1,max=30"`
	Status   *string   `json:"status,omitempty" validate:"omitempty,oneof=draft archived"`
	AudioURL *string   `json:"audio_url,omitempty" validate:"omitempty,url"`
}

// Validate validates the command
func (cmd UpdateIdeaCommand) Validate() error {
	if cmd.UserID == "" {
		return errors.New("user ID is required")
	}
	if cmd.IdeaID == "" {
		return errors.New("idea ID is required")
	}
	if cmd.Title == nil && cmd.Body == nil && cmd.Tags == nil && cmd.Status == nil && cmd.AudioURL == nil {
		return errors.New("nothing to update")
	}
	if cmd.Title != nil && *cmd.Title == "" {
		return errors.New("title cannot be empty")
	}
	if cmd.Title != nil && utf8.RuneCountInString(*cmd.Title) > MaxTitleLength {
		return errors.New("title exceeds maximum length")
	}
	if cmd.Body != nil && utf8.RuneCountInString(*cmd.Body) > MaxBodyLength {
		return errors.New("idea text exceeds maximum length")
	}
	if cmd.Tags != nil && len(*cmd.Tags) > MaxTags {
		return errors.New("too many tags")
	}
	if cmd.Status != nil && *cmd.Status != StatusDraft && *cmd.Status != StatusArchived {
		return errors.New("status must be draft or archived")
	}
	if cmd.AudioURL != nil && *cmd.AudioURL == "" {
		return errors.New("audio URL cannot be empty")
	}
	return nil
}
