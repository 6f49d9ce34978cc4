package lint

import (
	"sort"
	"sync"
)

// registry indexes schema rules by ID behind a read-write lock.
// Built-in rules insert themselves at init time; Starlark rules arrive
// later from the loader, so reads and writes interleave.
type registry struct {
	mu    sync.RWMutex
	rules map[string]RuleDef
}

// schemaRules backs the package-level functions.
var schemaRules = &registry{rules: make(map[string]RuleDef)}

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

// sorted snapshots the map in ID order. Finding order must be
// deterministic, so callers never see map iteration order.
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

func (r *registry) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = make(map[string]RuleDef)
}

// Register adds a rule, replacing any rule already holding the same ID.
// Built-in rules call this from init(); the Starlark loader calls it
// for each compiled custom rule.
func Register(rule RuleDef) {
	schemaRules.add(rule)
}

// GetAll returns every registered rule sorted by ID.
func GetAll() []RuleDef {
	return schemaRules.sorted()
}

// GetByID returns a rule by its ID.
func GetByID(id string) (RuleDef, bool) {
	return schemaRules.byID(id)
}

// Find returns a rule by ID or by convention name.
func Find(idOrName string) (RuleDef, bool) {
	if rule, ok := schemaRules.byID(idOrName); ok {
		return rule, true
	}
	return schemaRules.byName(idOrName)
}

// GetByGroup returns the rules in a group, sorted by ID.
func GetByGroup(group string) []RuleDef {
	var rules []RuleDef
	for _, rule := range schemaRules.sorted() {
		if rule.Group == group {
			rules = append(rules, rule)
		}
	}
	return rules
}

// Count returns the number of registered rules.
func Count() int {
	return schemaRules.size()
}

// Clear removes all registered rules. Used for testing.
func Clear() {
	schemaRules.reset()
}
