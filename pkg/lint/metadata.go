package lint

import "strings"

// DefaultDocsBaseURL points at the hosted rule documentation.
const DefaultDocsBaseURL = "https://apilint.dev/docs/rules"

// DocsBaseURL is the base used by BuildDocURL. Configs may replace it
// to point findings at a mirror or an internal docs site.
var DocsBaseURL = DefaultDocsBaseURL

// BuildDocURL returns the documentation page for a rule ID.
func BuildDocURL(ruleID string) string {
	return DocsBaseURL + "/" + strings.ToLower(ruleID)
}

// SetDocsBaseURL replaces the documentation base URL. A trailing slash
// is stripped so BuildDocURL joins cleanly.
func SetDocsBaseURL(url string) {
	DocsBaseURL = strings.TrimSuffix(url, "/")
}

// ResetDocsBaseURL restores the hosted default.
func ResetDocsBaseURL() {
	DocsBaseURL = DefaultDocsBaseURL
}
