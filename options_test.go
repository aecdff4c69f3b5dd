package careagent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyOptions(t *testing.T) {
	t.Run("returns empty options when no options provided", func(t *testing.T) {
		opts := ApplyOptions()
		assert.NotNil(t, opts)
		assert.Empty(t, opts.Model)
		assert.Zero(t, opts.MaxTokens)
		assert.Nil(t, opts.Temperature)
		assert.Nil(t, opts.Tools)
		assert.Empty(t, opts.ToolChoice)
	})

	t.Run("applies multiple options", func(t *testing.T) {
		tools := []Tool{{Name: "get_biografie"}}
		opts := ApplyOptions(
			WithModel("llama3.1"),
			WithMaxTokens(256),
			WithTemperature(0.2),
			WithTools(tools),
			WithToolChoice(ToolChoiceAuto),
		)

		assert.Equal(t, "llama3.1", opts.Model)
		assert.Equal(t, 256, opts.MaxTokens)
		if assert.NotNil(t, opts.Temperature) {
			assert.InDelta(t, 0.2, *opts.Temperature, 1e-9)
		}
		assert.Equal(t, tools, opts.Tools)
		assert.Equal(t, ToolChoiceAuto, opts.ToolChoice)
	})

	t.Run("later options win", func(t *testing.T) {
		opts := ApplyOptions(WithModel("a"), WithModel("b"))
		assert.Equal(t, "b", opts.Model)
	})
}
