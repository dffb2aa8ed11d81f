package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "ideaforge-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeGemini returns a test server replying with the given model text wrapped
// in the generateContent response envelope.
func fakeGemini(t *testing.T, status int, modelText string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, ":generateContent")
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.Contents)
		require.NotEmpty(t, req.Contents[0].Parts)
		assert.Equal(t, "application/json", req.GenerationConfig.ResponseMIMEType)

		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}

		resp := generateResponse{
			Candidates: []candidate{
				{Content: content{Parts: []part{{Text: modelText}}}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

const reportJSON = `{
	"summary": "A plausible niche product",
	"scores": {"overall": 72, "market": 64, "feasibility": 81, "innovation": 70, "monetization": 55},
	"swot": {
		"strengths": ["simple"],
		"weaknesses": ["crowded market"],
		"opportunities": ["b2b angle"],
		"threats": ["incumbents"]
	},
	"competitors": [{"name": "Acme", "description": "does the same", "differences": "pricing"}],
	"suggestions": ["talk to users"]
}`

func TestAnalyzeIdea(t *testing.T) {
	server := fakeGemini(t, http.StatusOK, reportJSON)
	defer server.Close()

	client := NewClient("test-key", zap.NewNop(), WithEndpoint(server.URL))

	report, err := client.AnalyzeIdea(context.Background(), "Solar kettle", "Boils water with sunlight")
	require.NoError(t, err)
	assert.Equal(t, "A plausible niche product", report.Summary)
	assert.Equal(t, 72, report.Scores.Overall)
	assert.Len(t, report.Competitors, 1)
	assert.NoError(t, report.Validate())
}

func TestAnalyzeIdeaStripsCodeFence(t *testing.T) {
	fenced := "```json\n" + reportJSON + "\n```"
	server := fakeGemini(t, http.StatusOK, fenced)
	defer server.Close()

	client := NewClient("test-key", zap.NewNop(), WithEndpoint(server.URL))

	report, err := client.AnalyzeIdea(context.Background(), "Solar kettle", "Boils water with sunlight")
	require.NoError(t, err)
	assert.Equal(t, "A plausible niche product", report.Summary)
}

func TestAnalyzeIdeaUpstreamError(t *testing.T) {
	server := fakeGemini(t, http.StatusInternalServerError, "")
	defer server.Close()

	client := NewClient("test-key", zap.NewNop(), WithEndpoint(server.URL))

	_, err := client.AnalyzeIdea(context.Background(), "Solar kettle", "Boils water with sunlight")
	assert.True(t, pkgerrors.IsExternal(err))
}

func TestAnalyzeIdeaRateLimited(t *testing.T) {
	server := fakeGemini(t, http.StatusTooManyRequests, "")
	defer server.Close()

	client := NewClient("test-key", zap.NewNop(), WithEndpoint(server.URL))

	_, err := client.AnalyzeIdea(context.Background(), "Solar kettle", "Boils water with sunlight")
	assert.True(t, pkgerrors.IsExternal(err))
}

func TestAnalyzeIdeaGarbageOutput(t *testing.T) {
	server := fakeGemini(t, http.StatusOK, "I'm sorry, I can't produce JSON today.")
	defer server.Close()

	client := NewClient("test-key", zap.NewNop(), WithEndpoint(server.URL))

	_, err := client.AnalyzeIdea(context.Background(), "Solar kettle", "Boils water with sunlight")
	assert.True(t, pkgerrors.IsExternal(err))
}

func TestEvaluateHackathon(t *testing.T) {
	text := `{"summary": "Solid weekend build", "scores": {"impact": 60, "technical": 75, "design": 50, "completion": 90}, "feedback": ["add tests"]}`
	server := fakeGemini(t, http.StatusOK, text)
	defer server.Close()

	client := NewClient("test-key", zap.NewNop(), WithEndpoint(server.URL))

	report, err := client.EvaluateHackathon(context.Background(), "Recipe bot", "Slack bot that plans dinners")
	require.NoError(t, err)
	assert.Equal(t, 75, report.Scores.Technical)
	assert.NoError(t, report.Validate())
}

func TestCombineConceptsBackfillsIngredients(t *testing.T) {
	// Model omitted the ingredients field entirely
	text := `{"name": "ToastAlarm", "pitch": "Wake up to fresh toast", "features": ["crust settings"], "absurdity": 85}`
	server := fakeGemini(t, http.StatusOK, text)
	defer server.Close()

	client := NewClient("test-key", zap.NewNop(), WithEndpoint(server.URL))

	concept, err := client.CombineConcepts(context.Background(), "toaster", "alarm clock")
	require.NoError(t, err)
	assert.Equal(t, [2]string{"toaster", "alarm clock"}, concept.Ingredients)
	assert.NoError(t, concept.Validate())
}

func TestStripCodeFence(t *testing.T) {
	cases := map[string]struct {
		in   string
		want string
	}{
		"plain":         {`{"a":1}`, `{"a":1}`},
		"json fence":    {"```json\n{\"a\":1}\n```", `{"a":1}`},
		"bare fence":    {"```\n{\"a\":1}\n```", `{"a":1}`},
		"padded":        {"  ```json\n{\"a\":1}\n```  ", `{"a":1}`},
		"inner backtik": {"no fence ``` here", "no fence ``` here"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, stripCodeFence(tc.in))
		})
	}
}
