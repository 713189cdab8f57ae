package hook

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/glorpus-work/storysync/pkg/errors"
)

// DefaultManager is the default Manager implementation backed by the Tengo
// executor.
type DefaultManager struct {
	executor *TengoExecutor
}

// NewManager creates a new hook manager.
func NewManager() *DefaultManager {
	return &DefaultManager{
		executor: NewTengoExecutor(),
	}
}

// Execute runs the script for the given type. Missing scripts are a no-op.
func (m *DefaultManager) Execute(hookType Type, ctx Context) error {
	ctxCopy := ctx
	if ctxCopy.Vars == nil {
		ctxCopy.Vars = make(map[string]interface{})
	}
	return m.executor.Execute(hookType, ctxCopy)
}

// AddHook registers or replaces a hook script.
func (m *DefaultManager) AddHook(hook Hook) error {
	if hook.Type == "" {
		return ErrHookTypeEmpty
	}
	m.executor.AddScript(hook.Type, hook.Content)
	return nil
}

// RemoveHook unregisters the hook of the given type.
func (m *DefaultManager) RemoveHook(hookType Type) error {
	if hookType == "" {
		return ErrHookTypeEmpty
	}
	m.executor.RemoveScript(hookType)
	return nil
}

// HasHook reports whether a hook of the given type is registered.
func (m *DefaultManager) HasHook(hookType Type) bool {
	return m.executor.HasScript(hookType)
}

// LoadFromDir registers all hook scripts found in dir. Files are named after
// their hook type (e.g. post-download.tengo); unknown names are skipped.
// A missing directory is not an error.
func (m *DefaultManager) LoadFromDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "failed to read hooks directory %s", dir)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".tengo" {
			continue
		}

		hookType := Type(strings.TrimSuffix(entry.Name(), ".tengo"))
		switch hookType {
		case PreDownload, PostDownload, PostDelete:
		default:
			continue
		}

		content, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return errors.Wrapf(err, "error reading hook file %s", entry.Name())
		}
		if err := m.AddHook(Hook{Type: hookType, Content: string(content)}); err != nil {
			return err
		}
	}
	return nil
}
