package starlark

import (
	"fmt"
	"log/slog"

	"github.com/apistyle/apilint/pkg/core"
	"github.com/apistyle/apilint/pkg/lint"
	"go.starlark.net/starlark"
)

// registerRule returns the register_rule builtin exposed to rule files.
// Each call appends a definition to collected; the check callable is
// wrapped so the lint engine can invoke it like a built-in rule.
//
// Starlark signature:
//
//	register_rule(id, name, check, group="custom", severity="MUST", description="")
//
// where check is a function(prop, opts) returning None, a message
// string, or a list of message strings / finding dicts.
func registerRule(collected *[]lint.RuleDef, pool *ThreadPool, logger *slog.Logger) *starlark.Builtin {
	return starlark.NewBuiltin("register_rule", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var (
			id, name, description string
			group                 = "custom"
			severity              = "MUST"
			check                 starlark.Callable
		)
		if err := starlark.UnpackArgs(b.Name(), args, kwargs,
			"id", &id,
			"name", &name,
			"check", &check,
			"group?", &group,
			"severity?", &severity,
			"description?", &description,
		); err != nil {
			return nil, err
		}

		if id == "" {
			return nil, fmt.Errorf("register_rule: id must not be empty")
		}
		if name == "" {
			return nil, fmt.Errorf("register_rule: name must not be empty")
		}
		sev, ok := core.ParseSeverity(severity)
		if !ok {
			return nil, fmt.Errorf("register_rule: invalid severity %q (want MUST or SHOULD)", severity)
		}
		if _, exists := lint.GetByID(id); exists {
			return nil, fmt.Errorf("register_rule: rule ID %q is already registered", id)
		}
		for _, r := range *collected {
			if r.ID == id {
				return nil, fmt.Errorf("register_rule: rule ID %q is already registered", id)
			}
		}

		def := lint.RuleDef{
			ID:          id,
			Name:        name,
			Group:       group,
			Description: description,
			Severity:    sev,
		}
		def.Check = wrapCheck(def, check, pool, logger)
		*collected = append(*collected, def)

		return starlark.None, nil
	})
}

// wrapCheck adapts a Starlark check callable to the engine's CheckFunc.
// A failing or misbehaving custom rule is logged and skipped for that
// property; it never aborts the walk.
func wrapCheck(def lint.RuleDef, fn starlark.Callable, pool *ThreadPool, logger *slog.Logger) lint.CheckFunc {
	return func(prop *lint.Property, opts map[string]any) []lint.Finding {
		thread := pool.Get(def.Name)
		defer pool.Put(thread)

		propVal, err := PropertyToStarlark(prop)
		if err != nil {
			logger.Warn("custom rule skipped: cannot convert property",
				slog.String("rule", def.Name),
				slog.String("path", prop.Path),
				slog.String("error", err.Error()),
			)
			return nil
		}

		if opts == nil {
			opts = map[string]any{}
		}
		optsVal, err := GoToStarlark(opts)
		if err != nil {
			logger.Warn("custom rule skipped: cannot convert options",
				slog.String("rule", def.Name),
				slog.String("error", err.Error()),
			)
			return nil
		}

		result, err := starlark.Call(thread, fn, starlark.Tuple{propVal, optsVal}, nil)
		if err != nil {
			logger.Warn("custom rule failed",
				slog.String("rule", def.Name),
				slog.String("path", prop.Path),
				slog.String("error", err.Error()),
			)
			return nil
		}

		findings, err := findingsFromValue(def, prop, result)
		if err != nil {
			logger.Warn("custom rule returned invalid findings",
				slog.String("rule", def.Name),
				slog.String("path", prop.Path),
				slog.String("error", err.Error()),
			)
			return nil
		}
		return findings
	}
}

// findingsFromValue interprets a check's return value. None means no
// findings, a string is a single message at the property's path, and a
// list may mix message strings with finding dicts.
func findingsFromValue(def lint.RuleDef, prop *lint.Property, v starlark.Value) ([]lint.Finding, error) {
	switch result := v.(type) {
	case starlark.NoneType:
		return nil, nil

	case starlark.String:
		f, err := newFinding(def, prop, string(result), "", "")
		if err != nil {
			return nil, err
		}
		return []lint.Finding{f}, nil
	}

	iter := starlark.Iterate(v)
	if iter == nil {
		return nil, fmt.Errorf("check must return None, a string, or a list, got %s", v.Type())
	}
	defer iter.Done()

	var findings []lint.Finding
	var item starlark.Value
	for iter.Next(&item) {
		f, err := findingFromItem(def, prop, item)
		if err != nil {
			return nil, err
		}
		findings = append(findings, f)
	}
	return findings, nil
}

// findingFromItem converts one list element: a bare message string or a
// dict with "message" plus optional "path" and "severity".
func findingFromItem(def lint.RuleDef, prop *lint.Property, item starlark.Value) (lint.Finding, error) {
	switch it := item.(type) {
	case starlark.String:
		return newFinding(def, prop, string(it), "", "")

	case *starlark.Dict:
		message, err := dictString(it, "message")
		if err != nil {
			return lint.Finding{}, err
		}
		path, err := dictString(it, "path")
		if err != nil {
			return lint.Finding{}, err
		}
		severity, err := dictString(it, "severity")
		if err != nil {
			return lint.Finding{}, err
		}
		return newFinding(def, prop, message, path, severity)

	default:
		return lint.Finding{}, fmt.Errorf("finding must be a string or a dict, got %s", item.Type())
	}
}

func newFinding(def lint.RuleDef, prop *lint.Property, message, path, severity string) (lint.Finding, error) {
	if message == "" {
		return lint.Finding{}, fmt.Errorf("finding message must not be empty")
	}

	sev := def.Severity
	if severity != "" {
		parsed, ok := core.ParseSeverity(severity)
		if !ok {
			return lint.Finding{}, fmt.Errorf("invalid finding severity %q (want MUST or SHOULD)", severity)
		}
		sev = parsed
	}

	if path == "" {
		path = prop.Path
	}

	return lint.Finding{
		RuleID:           def.ID,
		Rule:             def.Name,
		Kind:             lint.KindConvention,
		Severity:         sev,
		Path:             path,
		Message:          message,
		DocumentationURL: lint.BuildDocURL(def.ID),
	}, nil
}

// dictString reads an optional string entry from a finding dict.
func dictString(d *starlark.Dict, key string) (string, error) {
	v, found, err := d.Get(starlark.String(key))
	if err != nil || !found {
		return "", err
	}
	s, ok := v.(starlark.String)
	if !ok {
		return "", fmt.Errorf("finding %q must be a string, got %s", key, v.Type())
	}
	return string(s), nil
}
