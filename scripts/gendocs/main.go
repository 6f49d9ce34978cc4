// Package main provides a generator that extracts CLI, configuration, and rule
// metadata from apilint source code and generates markdown documentation.
//
// Usage:
//
//	go run ./scripts/gendocs -gen=cli -outdir=docs/cli
//	go run ./scripts/gendocs -gen=config -outdir=docs/configuration
//	go run ./scripts/gendocs -gen=rules -outdir=docs/rules
//	go run ./scripts/gendocs -gen=all
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
)

// generator couples a -gen target with its default output directory.
type generator struct {
	defaultDir string
	run        func(outDir string) error
}

var generators = map[string]generator{
	"cli":    {defaultDir: "cli", run: generateCLIDocs},
	"config": {defaultDir: "configuration", run: generateConfigDocs},
	"rules":  {defaultDir: "rules", run: generateRuleDocs},
}

// genOrder keeps -gen=all output deterministic.
var genOrder = []string{"cli", "config", "rules"}

var (
	genFlag    = flag.String("gen", "all", "what to generate: cli, config, rules, all")
	outDirFlag = flag.String("outdir", "", "output directory (defaults based on gen type)")
)

func main() {
	flag.Parse()

	targets := genOrder
	if *genFlag != "all" {
		if _, ok := generators[*genFlag]; !ok {
			log.Fatalf("unknown -gen value: %s (use: cli, config, rules, all)", *genFlag)
		}
		targets = []string{*genFlag}
	}

	root, err := findModuleRoot()
	if err != nil {
		log.Fatalf("failed to locate module root: %v", err)
	}
	log.Printf("Module root: %s", root)

	for _, name := range targets {
		gen := generators[name]
		outDir := filepath.Join(root, "docs", gen.defaultDir)
		// An explicit -outdir only applies to a single target.
		if *outDirFlag != "" && *genFlag != "all" {
			outDir = *outDirFlag
		}
		if err := gen.run(outDir); err != nil {
			log.Fatalf("failed to generate %s docs: %v", name, err)
		}
	}

	log.Println("Done!")
}

// findModuleRoot walks up from the working directory until it sees a
// go.mod file.
func findModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}
