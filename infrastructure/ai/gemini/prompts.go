package gemini

import "fmt"

func analysisPrompt(title, body string) string {
	return fmt.Sprintf(`You are a seasoned venture analyst. Evaluate the following startup idea.

Title: %s

Description:
%s

Respond with JSON only, in this exact format:
{
  "summary": "2-3 sentence assessment of the idea",
  "scores": {"overall": 0, "market": 0, "feasibility": 0, "innovation": 0, "monetization": 0},
  "swot": {
    "strengths": ["..."],
    "weaknesses": ["..."],
    "opportunities": ["..."],
    "threats": ["..."]
  },
  "competitors": [
    {"name": "...", "description": "...", "differences": "how this idea differs"}
  ],
  "suggestions": ["concrete next step", "..."]
}

All scores are integers from 0 to 100. List 2-4 competitors and 3-5 suggestions. Do not include any text outside the JSON.`, title, body)
}

func hackathonPrompt(title, body string) string {
	return fmt.Sprintf(`You are a hackathon judge. Score the following project the way a jury would.

Project: %s

Description:
%s

Respond with JSON only, in this exact format:
{
  "summary": "2-3 sentence verdict on the project",
  "scores": {"impact": 0, "technical": 0, "design": 0, "completion": 0},
  "feedback": ["actionable feedback item", "..."]
}

All scores are integers from 0 to 100. Give 3-5 feedback items. Do not include any text outside the JSON.`, title, body)
}

func frankensteinPrompt(first, second string) string {
	return fmt.Sprintf(`You are Doctor Frankenstein of product design. Stitch these two unrelated ingredients into one absurd but weirdly plausible product concept.

Ingredient one: %s
Ingredient two: %s

Respond with JSON only, in this exact format:
{
  "name": "catchy product name",
  "pitch": "one-paragraph elevator pitch",
  "ingredients": ["%s", "%s"],
  "features": ["feature", "..."],
  "absurdity": 0
}

List 3-6 features. The absurdity score is an integer from 0 to 100. Do not include any text outside the JSON.`, first, second, first, second)
}
