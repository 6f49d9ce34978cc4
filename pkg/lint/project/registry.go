package project

import (
	"sort"
	"sync"

	"github.com/apistyle/apilint/pkg/core"
	"github.com/apistyle/apilint/pkg/lint"
)

// registry indexes project rules by ID behind a read-write lock.
type registry struct {
	mu    sync.RWMutex
	rules map[string]RuleDef
}

// crossDocRules backs the package-level functions.
var crossDocRules = &registry{rules: make(map[string]RuleDef)}

// RuleDef is a project-level rule definition. Project rules see every
// document at once instead of one property at a time.
type RuleDef struct {
	ID          string        // Unique identifier, e.g. "PJ01"
	Name        string        // Convention name, e.g. "project-inconsistent-type"
	Group       string        // Category, e.g. "consistency"
	Description string        // Human-readable description
	Severity    lint.Severity // Default severity
	Check       Check         // The check function
	ConfigKeys  []string      // Configuration keys this rule accepts

	Rationale   string
	BadExample  string
	GoodExample string
	Fix         string
}

// Check is the function signature for project-level rule checks.
type Check func(ctx *Context, opts map[string]any) []Finding

// Finding is one project-level violation. Unlike a per-document
// finding it names the document the path points into.
type Finding struct {
	RuleID           string        // e.g., "PJ01"
	Rule             string        // convention name
	Severity         lint.Severity // MUST or SHOULD
	Document         string        // document the path points into
	Path             string        // JSON pointer within the document
	Message          string        // human-readable explanation
	DocumentationURL string        // rule documentation page
}

// Info returns the rule's metadata for listings and the docs
// generator.
func (d RuleDef) Info() core.RuleInfo {
	return core.RuleInfo{
		ID:              d.ID,
		Name:            d.Name,
		Group:           d.Group,
		Description:     d.Description,
		DefaultSeverity: d.Severity.String(),
		ConfigKeys:      d.ConfigKeys,
		Type:            "project",
		Rationale:       d.Rationale,
		BadExample:      d.BadExample,
		GoodExample:     d.GoodExample,
		Fix:             d.Fix,
	}
}

func (r *registry) add(rule RuleDef) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[rule.ID] = rule
}

func (r *registry) byID(id string) (RuleDef, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[id]
	return rule, ok
}

func (r *registry) byName(name string) (RuleDef, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rule := range r.rules {
		if rule.Name == name {
			return rule, true
		}
	}
	return RuleDef{}, false
}

func (r *registry) sorted() []RuleDef {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]RuleDef, 0, len(r.rules))
	for _, rule := range r.rules {
		out = append(out, rule)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *registry) size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rules)
}

// Register adds a rule, replacing any rule already holding the same ID.
// Call this from init() functions in rule packages.
func Register(rule RuleDef) {
	crossDocRules.add(rule)
}

// GetAll returns every registered rule sorted by ID.
func GetAll() []RuleDef {
	return crossDocRules.sorted()
}

// Find returns a rule by ID or by convention name.
func Find(idOrName string) (RuleDef, bool) {
	if rule, ok := crossDocRules.byID(idOrName); ok {
		return rule, true
	}
	return crossDocRules.byName(idOrName)
}

// Count returns the number of registered rules.
func Count() int {
	return crossDocRules.size()
}
