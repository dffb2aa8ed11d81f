package valueobjects

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIdeaContent(t *testing.T) {
	t.Run("valid content", func(t *testing.T) {
		content, err := NewIdeaContent("Uber for houseplants", "A subscription service that waters your plants.")
		require.NoError(t, err)
		assert.Equal(t, "Uber for houseplants", content.Title())
		assert.Equal(t, "A subscription service that waters your plants.", content.Body())
	})

	t.Run("trims whitespace", func(t *testing.T) {
		content, err := NewIdeaContent("  title  ", "  body  ")
		require.NoError(t, err)
		assert.Equal(t, "title", content.Title())
		assert.Equal(t, "body", content.Body())
	})

	t.Run("empty title rejected", func(t *testing.T) {
		_, err := NewIdeaContent("", "body")
		assert.Error(t, err)
	})

	t.Run("empty body rejected", func(t *testing.T) {
		_, err := NewIdeaContent("title", "   ")
		assert.Error(t, err)
	})

	t.Run("title too long rejected", func(t *testing.T) {
		_, err := NewIdeaContent(strings.Repeat("x", 201), "body")
		assert.Error(t, err)
	})

	t.Run("body too long rejected", func(t *testing.T) {
		_, err := NewIdeaContent("title", strings.Repeat("x", 20001))
		assert.Error(t, err)
	})

	t.Run("multibyte title counted in runes", func(t *testing.T) {
		_, err := NewIdeaContent(strings.Repeat("日", 200), "body")
		assert.NoError(t, err)
	})
}

func TestIdeaContentSummary(t *testing.T) {
	content, err := NewIdeaContent("title", "a long body that needs truncation somewhere")
	require.NoError(t, err)

	summary := content.Summary(10)
	assert.LessOrEqual(t, len([]rune(summary)), 14) // 10 runes plus ellipsis
}

func TestIdeaContentEquals(t *testing.T) {
	a, _ := NewIdeaContent("title", "body")
	b, _ := NewIdeaContent("title", "body")
	c, _ := NewIdeaContent("other", "body")

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}

func TestIdeaIDRoundTrip(t *testing.T) {
	id := NewIdeaID()
	assert.False(t, id.IsZero())

	parsed, err := NewIdeaIDFromString(id.String())
	require.NoError(t, err)
	assert.True(t, id.Equals(parsed))

	_, err = NewIdeaIDFromString("not-a-uuid")
	assert.Error(t, err)
}
