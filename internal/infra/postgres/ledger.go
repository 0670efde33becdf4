package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eirikeg1/dribbling-detection-pipeline/internal/domain/entity"
)

// Ledger records runs and gate decisions in Postgres. Everything the tool
// does is also reported on the console; the ledger is the durable copy.
type Ledger struct {
	pool *pgxpool.Pool
}

func NewLedger(pool *pgxpool.Pool) *Ledger {
	return &Ledger{pool: pool}
}

func (l *Ledger) RecordRun(ctx context.Context, run *entity.BatchRun) error {
	tx, err := l.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin run record: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO conversion_runs (id, started_at, ended_at, duration_seconds, videos_processed)
		VALUES ($1,$2,$3,$4,$5)`,
		run.ID, run.StartedAt, run.EndedAt, run.DurationSeconds(), len(run.Details),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, d := range run.Details {
		_, err = tx.Exec(ctx, `
			INSERT INTO conversion_clips (run_id, original_file_name, video_name, fps, frames_extracted)
			VALUES ($1,$2,$3,$4,$5)`,
			run.ID, d.OriginalFileName, d.VideoName, d.FPS, d.FramesExtracted,
		)
		if err != nil {
			return fmt.Errorf("insert clip summary: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (l *Ledger) RecordGateDecision(ctx context.Context, runID uuid.UUID, filePath string, verdict entity.Verdict, result entity.GateResult) error {
	_, err := l.pool.Exec(ctx, `
		INSERT INTO gate_decisions (run_id, file_path, verdict, qualifying, oversized_height, reason)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		runID, filePath, string(verdict), result.Qualifying, result.OversizedHeight, result.Reason,
	)
	if err != nil {
		return fmt.Errorf("insert gate decision: %w", err)
	}
	return nil
}
