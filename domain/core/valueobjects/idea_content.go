package valueobjects

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"ideaforge-backend/domain/config"
	pkgerrors "ideaforge-backend/pkg/errors"
)

// IdeaContent is a value object for the text of a submitted idea
type IdeaContent struct {
	title string
	body  string
}

// NewIdeaContent creates content with validation using default configuration
func NewIdeaContent(title, body string) (IdeaContent, error) {
	return NewIdeaContentWithConfig(title, body, config.DefaultDomainConfig())
}

// NewIdeaContentWithConfig creates content with validation and configuration
func NewIdeaContentWithConfig(title, body string, cfg *config.DomainConfig) (IdeaContent, error) {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}

	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)

	if title == "" {
		return IdeaContent{}, pkgerrors.NewValidationError("title cannot be empty")
	}

	if body == "" && !cfg.AllowEmptyBody {
		return IdeaContent{}, pkgerrors.NewValidationError("idea text cannot be empty")
	}

	titleLength := utf8.RuneCountInString(title)
	if titleLength < cfg.MinTitleLength {
		return IdeaContent{}, fmt.Errorf("title too short: minimum %d characters required", cfg.MinTitleLength)
	}

	if titleLength > cfg.MaxTitleLength {
		return IdeaContent{}, fmt.Errorf("title exceeds maximum length of %d characters", cfg.MaxTitleLength)
	}

	if utf8.RuneCountInString(body) > cfg.MaxIdeaLength {
		return IdeaContent{}, fmt.Errorf("idea text exceeds maximum length of %d characters", cfg.MaxIdeaLength)
	}

	return IdeaContent{
		title: title,
		body:  body,
	}, nil
}

// Title returns the idea title
func (c IdeaContent) Title() string {
	return c.title
}

// Body returns the idea text
func (c IdeaContent) Body() string {
	return c.body
}

// IsEmpty checks if content is empty
func (c IdeaContent) IsEmpty() bool {
	return c.title == "" && c.body == ""
}

// Equals checks if two contents are equal
func (c IdeaContent) Equals(other IdeaContent) bool {
	return c.title == other.title && c.body == other.body
}

// WordCount returns the approximate word count
func (c IdeaContent) WordCount() int {
	combined := c.title + " " + c.body
	return len(strings.Fields(combined))
}

// Summary returns a truncated summary of the content
func (c IdeaContent) Summary(maxLength int) string {
	if maxLength <= 0 {
		return ""
	}

	combined := c.title
	if c.body != "" {
		combined += ": " + c.body
	}

	if utf8.RuneCountInString(combined) <= maxLength {
		return combined
	}

	runes := []rune(combined)
	return string(runes[:maxLength-3]) + "..."
}
