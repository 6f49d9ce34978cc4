package commands

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed all:templates
var templateFS embed.FS

// walkTemplate visits every entry of an embedded project template,
// handing the callback the embedded path alongside the on-disk
// relative name.
func walkTemplate(template string, fn func(embedPath, rel string, d fs.DirEntry) error) error {
	root := "templates/" + template
	return fs.WalkDir(templateFS, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		// Embedded paths always use forward slashes.
		rel := strings.TrimPrefix(strings.TrimPrefix(path, root), "/")
		if rel == "" {
			return nil
		}
		return fn(path, targetName(rel), d)
	})
}

// targetName maps embedded file names to on-disk names. A literal
// .gitignore inside the template tree would apply to this repository,
// so it is stored without the dot.
func targetName(rel string) string {
	if rel == "gitignore" {
		return ".gitignore"
	}
	if strings.HasSuffix(rel, "/gitignore") {
		return strings.TrimSuffix(rel, "gitignore") + ".gitignore"
	}
	return rel
}

// writeTemplate materializes an embedded project template under
// targetDir. Existing files are kept unless force is set.
func writeTemplate(template, targetDir string, force bool) error {
	return walkTemplate(template, func(embedPath, rel string, d fs.DirEntry) error {
		target := filepath.Join(targetDir, filepath.FromSlash(rel))
		if d.IsDir() {
			return os.MkdirAll(target, 0750)
		}
		if !force {
			if _, err := os.Stat(target); err == nil {
				return nil
			}
		}
		content, err := templateFS.ReadFile(embedPath)
		if err != nil {
			return err
		}
		return os.WriteFile(target, content, 0600)
	})
}

// templateFiles lists a template's files under their on-disk names.
func templateFiles(template string) ([]string, error) {
	var files []string
	err := walkTemplate(template, func(_ string, rel string, d fs.DirEntry) error {
		if !d.IsDir() {
			files = append(files, rel)
		}
		return nil
	})
	return files, err
}

// groupScaffoldFiles buckets scaffold files by directory for display.
func groupScaffoldFiles(files []string) map[string][]string {
	groups := make(map[string][]string)
	for _, f := range files {
		switch {
		case strings.HasPrefix(f, "schemas/"):
			groups["schemas"] = append(groups["schemas"], f)
		case strings.HasPrefix(f, "rules/"):
			groups["rules"] = append(groups["rules"], f)
		default:
			groups["config"] = append(groups["config"], f)
		}
	}
	return groups
}
