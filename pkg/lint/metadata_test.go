package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/apistyle/apilint/pkg/lint"
)

func TestBuildDocURL(t *testing.T) {
	t.Cleanup(lint.ResetDocsBaseURL)

	assert.Equal(t, lint.DefaultDocsBaseURL+"/mn01", lint.BuildDocURL("MN01"))

	lint.SetDocsBaseURL("https://example.com/rules/")
	assert.Equal(t, "https://example.com/rules/gn01", lint.BuildDocURL("GN01"))
}
