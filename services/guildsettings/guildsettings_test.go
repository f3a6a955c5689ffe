package guildsettings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCustomEmoji(t *testing.T) {
	t.Run("bare snowflake ID is custom", func(t *testing.T) {
		id, ok := parseCustomEmoji("123456789012345678")
		assert.True(t, ok)
		assert.Equal(t, "123456789012345678", id)
	})

	t.Run("full emoji mention is custom", func(t *testing.T) {
		id, ok := parseCustomEmoji("<:party:123456789012345678>")
		assert.True(t, ok)
		assert.Equal(t, "123456789012345678", id)
	})

	t.Run("animated emoji mention is custom", func(t *testing.T) {
		id, ok := parseCustomEmoji("<a:blob:987654321098765432>")
		assert.True(t, ok)
		assert.Equal(t, "987654321098765432", id)
	})

	t.Run("unicode emoji is not custom", func(t *testing.T) {
		_, ok := parseCustomEmoji("⭐")
		assert.False(t, ok)
	})

	t.Run("short number is not custom", func(t *testing.T) {
		_, ok := parseCustomEmoji("42")
		assert.False(t, ok)
	})

	t.Run("plain name is not custom", func(t *testing.T) {
		_, ok := parseCustomEmoji("star")
		assert.False(t, ok)
	})
}
