package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectiveMode(t *testing.T) {
	var buf bytes.Buffer

	tests := []struct {
		mode Mode
		want Mode
	}{
		{ModeText, ModeText},
		{ModeMarkdown, ModeMarkdown},
		{ModeJSON, ModeJSON},
		// A bytes.Buffer is not a terminal, so auto resolves to markdown.
		{ModeAuto, ModeMarkdown},
		{Mode(""), ModeMarkdown},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			r := NewRenderer(&buf, &buf, tt.mode)
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

func TestPrintlnAndPrintf(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRenderer(&out, &errOut, ModeText)

	r.Println("hello")
	r.Printf("%d findings\n", 3)

	assert.Equal(t, "hello\n3 findings\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestStylesPlainWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, &buf, ModeText)

	// Not a terminal, so styles render without escape codes.
	rendered := r.Styles().Error.Render("boom")
	assert.Equal(t, "boom", rendered)
}

func TestSuccessMarkdownMode(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, &buf, ModeMarkdown)

	r.Success("all clean")
	assert.Equal(t, "all clean\n", buf.String())
}

func TestErrorGoesToErrWriter(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRenderer(&out, &errOut, ModeMarkdown)

	r.Error("broke")
	assert.Empty(t, out.String())
	assert.Equal(t, "broke\n", errOut.String())
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, &buf, ModeJSON)

	err := r.JSON(CheckOutput{
		Summary: CheckSummary{DocumentsChecked: 2, TotalFindings: 1, Must: 1},
		Documents: []CheckFileResult{{
			Document: "order.yaml",
			Findings: []CheckFinding{{
				RuleID:   "GN01",
				Rule:     "generic-field-id-type",
				Kind:     "CONVENTION",
				Severity: "MUST",
				Path:     "/properties/id",
				Message:  `"id" must be of type string, got "integer"`,
			}},
		}},
	})
	require.NoError(t, err)

	s := buf.String()
	assert.True(t, strings.HasPrefix(s, "{\n"), "expected indented JSON")
	assert.Contains(t, s, `"rule": "generic-field-id-type"`)
	assert.Contains(t, s, `"documents_checked": 2`)
	// Empty project section is omitted entirely.
	assert.NotContains(t, s, `"project"`)
}
