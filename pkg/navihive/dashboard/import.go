package dashboard

import (
	"context"
	"fmt"

	"github.com/Cooldy-Wong/Navihive/pkg/navihive/importexport"
)

// ValidationError reports a malformed import snapshot, rejected before
// any mutation. The message names the missing or invalid section.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Import submits a dataset snapshot for reconciliation and returns the
// merge statistics. Import bypasses sort sessions entirely. On success
// the entity store and config cache are both refreshed from storage.
func (c *Controller) Import(ctx context.Context, snapshot importexport.Snapshot) (importexport.ImportStats, error) {
	result, err := c.store.ImportDataset(ctx, snapshot)
	if err != nil {
		return importexport.ImportStats{}, fmt.Errorf("import dataset: %w", err)
	}
	if !result.Success {
		return importexport.ImportStats{}, &ValidationError{Message: result.Error}
	}

	var stats importexport.ImportStats
	if result.Stats != nil {
		stats = *result.Stats
	}

	if err := c.Refresh(ctx); err != nil {
		return stats, err
	}
	return stats, nil
}
