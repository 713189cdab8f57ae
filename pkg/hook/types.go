// Package hook runs user-provided Tengo scripts at repository lifecycle
// points: before and after a download, and after a delete.
package hook

import "github.com/glorpus-work/storysync/pkg/model"

// Type identifies a lifecycle point.
type Type string

// Supported hook types.
const (
	PreDownload  Type = "pre-download"
	PostDownload Type = "post-download"
	PostDelete   Type = "post-delete"
)

// Hook represents a hook script with its type and content.
type Hook struct {
	Type    Type
	Content string
}

// Context carries the information passed to hook scripts.
type Context struct {
	Key         model.RepositoryKey
	Version     string
	ContentPath string
	Vars        map[string]interface{}
}

// Manager defines the interface for managing lifecycle hooks.
type Manager interface {
	// Execute runs the script for the given type. Missing scripts are a no-op.
	Execute(hookType Type, ctx Context) error

	// AddHook registers or replaces a hook script.
	AddHook(hook Hook) error

	// RemoveHook unregisters the hook of the given type.
	RemoveHook(hookType Type) error

	// HasHook reports whether a hook of the given type is registered.
	HasHook(hookType Type) bool
}
