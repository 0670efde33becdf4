package port

import (
	"context"

	"github.com/eirikeg1/dribbling-detection-pipeline/internal/domain/entity"
	"github.com/google/uuid"
)

// RunLedger records conversion runs and gate decisions durably. Optional:
// a nil ledger means console logging only.
type RunLedger interface {
	// RecordRun persists a finished batch run and its per-clip summaries.
	RecordRun(ctx context.Context, run *entity.BatchRun) error
	// RecordGateDecision persists one quality-gate verdict. Deletions are
	// the one irreversible operation in the system, so their triggering
	// numbers are kept here as well as in the console log.
	RecordGateDecision(ctx context.Context, runID uuid.UUID, filePath string, verdict entity.Verdict, result entity.GateResult) error
}
