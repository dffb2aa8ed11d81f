package analysis

import (
	"encoding/json"

	pkgerrors "ideaforge-backend/pkg/errors"
)

// Scores holds the per-dimension ratings of an idea analysis.
// Every dimension is rated from 0 to 100.
type Scores struct {
	Overall      int `json:"overall"`
	Market       int `json:"market"`
	Feasibility  int `json:"feasibility"`
	Innovation   int `json:"innovation"`
	Monetization int `json:"monetization"`
}

// SWOT is the strengths/weaknesses/opportunities/threats breakdown
type SWOT struct {
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Opportunities []string `json:"opportunities"`
	Threats       []string `json:"threats"`
}

// Competitor describes an existing product in the same space
type Competitor struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Differences string `json:"differences"`
}

// Report is the structured result of analyzing a startup idea
type Report struct {
	Summary     string       `json:"summary"`
	Scores      Scores       `json:"scores"`
	SWOT        SWOT         `json:"swot"`
	Competitors []Competitor `json:"competitors"`
	Suggestions []string     `json:"suggestions"`
}

// HackathonScores rates a hackathon project on the standard judging axes
type HackathonScores struct {
	Impact     int `json:"impact"`
	Technical  int `json:"technical"`
	Design     int `json:"design"`
	Completion int `json:"completion"`
}

// HackathonReport is the structured result of evaluating a hackathon project
type HackathonReport struct {
	Summary  string          `json:"summary"`
	Scores   HackathonScores `json:"scores"`
	Feedback []string        `json:"feedback"`
}

// FrankensteinConcept is a generated mashup of two unrelated ingredients
type FrankensteinConcept struct {
	Name        string    `json:"name"`
	Pitch       string    `json:"pitch"`
	Ingredients [2]string `json:"ingredients"`
	Features    []string  `json:"features"`
	Absurdity   int       `json:"absurdity"`
}

// Validate checks that all score dimensions are within range
func (s Scores) Validate() error {
	for _, v := range []int{s.Overall, s.Market, s.Feasibility, s.Innovation, s.Monetization} {
		if v < 0 || v > 100 {
			return pkgerrors.NewValidationError("score must be between 0 and 100")
		}
	}
	return nil
}

// Validate checks that all score dimensions are within range
func (s HackathonScores) Validate() error {
	for _, v := range []int{s.Impact, s.Technical, s.Design, s.Completion} {
		if v < 0 || v > 100 {
			return pkgerrors.NewValidationError("score must be between 0 and 100")
		}
	}
	return nil
}

// Validate checks the report for structural problems before persisting
func (r *Report) Validate() error {
	if r.Summary == "" {
		return pkgerrors.NewValidationError("report summary cannot be empty")
	}
	return r.Scores.Validate()
}

// Validate checks the report for structural problems before persisting
func (r *HackathonReport) Validate() error {
	if r.Summary == "" {
		return pkgerrors.NewValidationError("report summary cannot be empty")
	}
	return r.Scores.Validate()
}

// Validate checks the concept for structural problems before persisting
func (c *FrankensteinConcept) Validate() error {
	if c.Name == "" || c.Pitch == "" {
		return pkgerrors.NewValidationError("concept name and pitch cannot be empty")
	}
	if c.Ingredients[0] == "" || c.Ingredients[1] == "" {
		return pkgerrors.NewValidationError("concept requires two ingredients")
	}
	if c.Absurdity < 0 || c.Absurdity > 100 {
		return pkgerrors.NewValidationError("absurdity must be between 0 and 100")
	}
	return nil
}

// Marshal serializes the report into a document payload
func (r *Report) Marshal() (json.RawMessage, error) {
	return json.Marshal(r)
}

// Marshal serializes the report into a document payload
func (r *HackathonReport) Marshal() (json.RawMessage, error) {
	return json.Marshal(r)
}

// Marshal serializes the concept into a document payload
func (c *FrankensteinConcept) Marshal() (json.RawMessage, error) {
	return json.Marshal(c)
}
