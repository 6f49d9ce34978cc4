package lint_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apistyle/apilint/pkg/lint"
)

// inertRule builds a rule that never fires, safe to register globally.
func inertRule(id, name, group string) lint.RuleDef {
	return lint.RuleDef{
		ID:          id,
		Name:        name,
		Group:       group,
		Description: "test rule",
		Severity:    lint.SeverityShould,
		Check: func(prop *lint.Property, opts map[string]any) []lint.Finding {
			return nil
		},
	}
}

func TestRegisterAndLookup(t *testing.T) {
	lint.Register(inertRule("ZZ01", "test-rule-one", "testgroup"))

	rule, ok := lint.GetByID("ZZ01")
	require.True(t, ok)
	assert.Equal(t, "test-rule-one", rule.Name)

	_, ok = lint.GetByID("ZZ99")
	assert.False(t, ok)
}

func TestFindByIDOrName(t *testing.T) {
	lint.Register(inertRule("ZZ02", "test-rule-two", "testgroup"))

	byID, ok := lint.Find("ZZ02")
	require.True(t, ok)
	byName, ok2 := lint.Find("test-rule-two")
	require.True(t, ok2)
	assert.Equal(t, byID.ID, byName.ID)

	_, ok = lint.Find("no-such-rule")
	assert.False(t, ok)
}

func TestGetAllSortedByID(t *testing.T) {
	rules := lint.GetAll()
	require.NotEmpty(t, rules)

	ids := make([]string, len(rules))
	for i, r := range rules {
		ids[i] = r.ID
	}
	assert.True(t, sort.StringsAreSorted(ids), "GetAll must return rules in ID order, got %v", ids)
}

func TestGetAllIncludesBuiltins(t *testing.T) {
	want := []string{
		"AD01", "AD02",
		"GN01", "GN02", "GN03",
		"MN01", "MN02", "MN03",
		"RF01",
	}
	for _, id := range want {
		_, ok := lint.GetByID(id)
		assert.True(t, ok, "built-in rule %s not registered", id)
	}
}

func TestGetByGroup(t *testing.T) {
	money := lint.GetByGroup("money")
	require.Len(t, money, 3)
	for _, r := range money {
		assert.Equal(t, "money", r.Group)
	}

	assert.Empty(t, lint.GetByGroup("no-such-group"))
}

func TestRuleInfo(t *testing.T) {
	rule, ok := lint.GetByID("GN01")
	require.True(t, ok)

	info := rule.Info()
	assert.Equal(t, "GN01", info.ID)
	assert.Equal(t, "generic-field-id-type", info.Name)
	assert.Equal(t, "MUST", info.DefaultSeverity)
	assert.Equal(t, "schema", info.Type)
	assert.NotEmpty(t, info.Description)
}
