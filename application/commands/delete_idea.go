package commands

import "errors"

// DeleteIdeaCommand represents the command to delete an idea and its documents
type DeleteIdeaCommand struct {
	UserID string `json:"user_id" validate:"required"`
	IdeaID string `json:"idea_id" validate:"required,uuid"`

	// Hard removes the record entirely instead of soft-deleting it
	Hard bool `json:"hard,omitempty"`
}

// Validate validates the command
func (cmd DeleteIdeaCommand) Validate() error {
	if cmd.UserID == "" {
		return errors.New("user ID is required")
	}
	if cmd.IdeaID == "" {
		return errors.New("idea ID is required")
	}
	return nil
}
