package commands

import "errors"

// SaveAnalysisCommand requests a fresh analysis of an idea and persists the result
type SaveAnalysisCommand struct {
	UserID     string `json:"user_id" validate:"required"`
	IdeaID     string `json:"idea_id" validate:"required,uuid"`
	DocumentID string `json:"document_id" validate:"required,uuid"`
}

// Validate validates the command
func (cmd SaveAnalysisCommand) Validate() error {
	if cmd.UserID == "" {
		return errors.New("user ID is required")
	}
	if cmd.IdeaID == "" {
		return errors.New("idea ID is required")
	}
	if cmd.DocumentID == "" {
		return errors.New("document ID is required")
	}
	return nil
}

// SaveHackathonCommand requests a hackathon-style evaluation of an idea
type SaveHackathonCommand struct {
	UserID     string `json:"user_id" validate:"required"`
	IdeaID     string `json:"idea_id" validate:"required,uuid"`
	DocumentID string `json:"document_id" validate:"required,uuid"`
}

// Validate validates the command
func (cmd SaveHackathonCommand) Validate() error {
	if cmd.UserID == "" {
		return errors.New("user ID is required")
	}
	if cmd.IdeaID == "" {
		return errors.New("idea ID is required")
	}
	if cmd.DocumentID == "" {
		return errors.New("document ID is required")
	}
	return nil
}
