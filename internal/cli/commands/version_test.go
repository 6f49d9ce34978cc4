package commands

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	tests := []struct {
		name       string
		version    string
		buildDate  string
		gitCommit  string
		want       []string
		wantAbsent []string
	}{
		{
			name:      "full build info",
			version:   "1.2.3",
			buildDate: "2026-08-20",
			gitCommit: "abc1234",
			want: []string{
				"apilint 1.2.3",
				"API schema convention linter",
				"commit:  abc1234",
				"built:   2026-08-20",
				"go:      " + runtime.Version(),
			},
		},
		{
			name:    "dev build omits commit and date",
			version: "dev",
			want: []string{
				"apilint dev",
				"go:      " + runtime.Version(),
			},
			wantAbsent: []string{
				"commit:",
				"built:",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewVersionCommand(tt.version, tt.buildDate, tt.gitCommit)
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs([]string{})

			require.NoError(t, cmd.Execute())

			out := buf.String()
			for _, s := range tt.want {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.wantAbsent {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestVersionCommandMetadata(t *testing.T) {
	cmd := NewVersionCommand("dev", "", "")

	assert.Equal(t, "version", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
}
