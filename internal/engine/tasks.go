package engine

import (
	"context"
	"fmt"

	"github.com/adite/labyrinth/internal/remediation"
	"github.com/adite/labyrinth/internal/vault"
)

// VaultTaskSink appends synthesized tasks as checklist lines to a
// single inbox record in the vault.
type VaultTaskSink struct {
	Store vault.RecordStore
	Path  string
}

// NewVaultTaskSink returns a sink writing to path, or the default
// inbox when path is empty.
func NewVaultTaskSink(store vault.RecordStore, path string) *VaultTaskSink {
	if path == "" {
		path = DefaultTasksPath
	}
	return &VaultTaskSink{Store: store, Path: path}
}

// AppendTask writes one unchecked checklist line carrying the task id,
// so external tooling can link completions back.
func (s *VaultTaskSink) AppendTask(ctx context.Context, task remediation.Task) error {
	line := fmt.Sprintf("- [ ] %s (%s)\n", task.Text, task.ID)
	return s.Store.Append(ctx, s.Path, line)
}
