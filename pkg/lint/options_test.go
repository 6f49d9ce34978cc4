package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apistyle/apilint/pkg/lint"
)

func TestGetIntOption(t *testing.T) {
	tests := []struct {
		name string
		opts map[string]any
		want int
	}{
		{"nil opts", nil, 42},
		{"missing key", map[string]any{}, 42},
		{"int value", map[string]any{"n": 3}, 3},
		{"int64 value", map[string]any{"n": int64(3)}, 3},
		{"float64 value", map[string]any{"n": 3.0}, 3},
		{"wrong type", map[string]any{"n": "three"}, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lint.GetIntOption(tt.opts, "n", 42))
		})
	}
}

func TestGetStringOption(t *testing.T) {
	opts := map[string]any{"annotation": "x-ref", "n": 3}
	assert.Equal(t, "x-ref", lint.GetStringOption(opts, "annotation", "x-references"))
	assert.Equal(t, "x-references", lint.GetStringOption(opts, "missing", "x-references"))
	assert.Equal(t, "x-references", lint.GetStringOption(opts, "n", "x-references"))
	assert.Equal(t, "x-references", lint.GetStringOption(nil, "annotation", "x-references"))
}

func TestGetBoolOption(t *testing.T) {
	opts := map[string]any{"strict": true}
	assert.True(t, lint.GetBoolOption(opts, "strict", false))
	assert.False(t, lint.GetBoolOption(opts, "missing", false))
	assert.True(t, lint.GetBoolOption(nil, "strict", true))
}

func TestGetStringSliceOption(t *testing.T) {
	def := []string{"date-time"}

	assert.Equal(t, def, lint.GetStringSliceOption(nil, "formats", def))
	assert.Equal(t, def, lint.GetStringSliceOption(map[string]any{}, "formats", def))

	opts := map[string]any{"formats": []string{"date", "date-time"}}
	assert.Equal(t, []string{"date", "date-time"}, lint.GetStringSliceOption(opts, "formats", def))

	// YAML decoding produces []any
	opts = map[string]any{"formats": []any{"date", "date-time", 7}}
	assert.Equal(t, []string{"date", "date-time"}, lint.GetStringSliceOption(opts, "formats", def))
}

func TestGetOptionGeneric(t *testing.T) {
	opts := map[string]any{"limit": 5, "name": "x"}
	assert.Equal(t, 5, lint.GetOption(opts, "limit", 0))
	assert.Equal(t, "fallback", lint.GetOption(opts, "limit", "fallback"))
	assert.Equal(t, "x", lint.GetOption(opts, "name", ""))
}

func TestDecodeOptions(t *testing.T) {
	type ruleOpts struct {
		Annotation string   `mapstructure:"annotation"`
		Formats    []string `mapstructure:"formats"`
		MaxDepth   int      `mapstructure:"max_depth"`
	}

	var out ruleOpts
	err := lint.DecodeOptions(map[string]any{
		"annotation": "x-ref",
		"formats":    []any{"date-time"},
		"max_depth":  "7", // weakly typed
	}, &out)
	require.NoError(t, err)

	assert.Equal(t, "x-ref", out.Annotation)
	assert.Equal(t, []string{"date-time"}, out.Formats)
	assert.Equal(t, 7, out.MaxDepth)

	var untouched ruleOpts
	require.NoError(t, lint.DecodeOptions(nil, &untouched))
	assert.Zero(t, untouched)
}
