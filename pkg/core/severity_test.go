package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/apistyle/apilint/pkg/core"
)

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "MUST", core.SeverityMust.String())
	assert.Equal(t, "SHOULD", core.SeverityShould.String())
	assert.Equal(t, "UNKNOWN", core.Severity(99).String())
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in     string
		want   core.Severity
		wantOK bool
	}{
		{"must", core.SeverityMust, true},
		{"MUST", core.SeverityMust, true},
		{"should", core.SeverityShould, true},
		{"Should", core.SeverityShould, true},
		{"warning", core.SeverityShould, false},
		{"", core.SeverityShould, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := core.ParseSeverity(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestProjectRulesConfigIsEnabled(t *testing.T) {
	var nilCfg *core.ProjectRulesConfig
	assert.True(t, nilCfg.IsEnabled())

	assert.True(t, (&core.ProjectRulesConfig{}).IsEnabled())

	off := false
	assert.False(t, (&core.ProjectRulesConfig{Enabled: &off}).IsEnabled())
}
