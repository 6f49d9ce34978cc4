// Package state persists check runs and their findings using SQLite.
// Runs make lint history queryable and let a later run be diffed
// against an earlier baseline.
//
// Note: Core types are defined in pkg/core. This package re-exports
// them via type aliases for convenience. New code should import
// pkg/core directly.
package state

import (
	"github.com/apistyle/apilint/pkg/core"
)

// Aliases for the core store types, so callers of this package don't
// need a second import for the record shapes it returns.
type (
	Store         = core.Store
	RunStatus     = core.RunStatus
	Run           = core.Run
	FindingRecord = core.FindingRecord
)

// Re-exported run status constants.
const (
	RunStatusRunning   = core.RunStatusRunning
	RunStatusCompleted = core.RunStatusCompleted
	RunStatusFailed    = core.RunStatusFailed
)
