package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/flowgate/flowgate/engine/core"
	"github.com/flowgate/flowgate/engine/execution"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
)

// ExecutionRepo implements execution.Repository over PostgreSQL.
type ExecutionRepo struct {
	db DBInterface
}

func NewExecutionRepo(db DBInterface) *ExecutionRepo {
	return &ExecutionRepo{db: db}
}

type executionDB struct {
	ID         string     `db:"id"`
	WorkflowID string     `db:"workflow_id"`
	Status     string     `db:"status"`
	Finished   *bool      `db:"finished"`
	Mode       string     `db:"mode"`
	StartedAt  *time.Time `db:"started_at"`
	StoppedAt  *time.Time `db:"stopped_at"`
	WaitTill   *time.Time `db:"wait_till"`
	Data       []byte     `db:"data"`
}

func (e *executionDB) toRecord() (*execution.Record, error) {
	record := &execution.Record{
		ID:         core.ID(e.ID),
		WorkflowID: e.WorkflowID,
		Status:     core.StatusType(e.Status),
		Finished:   e.Finished,
		Mode:       e.Mode,
		StartedAt:  e.StartedAt,
		StoppedAt:  e.StoppedAt,
		WaitTill:   e.WaitTill,
	}
	if len(e.Data) > 0 {
		if err := json.Unmarshal(e.Data, &record.Data); err != nil {
			return nil, fmt.Errorf("decoding execution data: %w", err)
		}
	}
	return record, nil
}

// Get reads one persisted execution record. The data column is only fetched
// when opts.IncludeData requests the full unflattened result.
func (r *ExecutionRepo) Get(
	ctx context.Context,
	execID core.ID,
	opts execution.GetOptions,
) (*execution.Record, error) {
	columns := []string{
		"id", "workflow_id", "status", "finished", "mode",
		"started_at", "stopped_at", "wait_till",
	}
	if opts.IncludeData {
		columns = append(columns, "data")
	}
	query, args, err := squirrel.
		Select(columns...).
		From("executions").
		Where(squirrel.Eq{"id": execID.String()}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building execution query: %w", err)
	}
	var row executionDB
	if err := pgxscan.Get(ctx, r.db, &row, query, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, execution.ErrNotFound
		}
		return nil, fmt.Errorf("scanning execution %s: %w", execID, err)
	}
	return row.toRecord()
}

// Create inserts the record for a freshly dispatched run.
func (r *ExecutionRepo) Create(ctx context.Context, record *execution.Record) error {
	data, err := encodeData(record.Data)
	if err != nil {
		return err
	}
	query, args, err := squirrel.
		Insert("executions").
		Columns("id", "workflow_id", "status", "finished", "mode",
			"started_at", "stopped_at", "wait_till", "data").
		Values(record.ID.String(), record.WorkflowID, record.Status.String(),
			record.Finished, record.Mode, record.StartedAt, record.StoppedAt,
			record.WaitTill, data).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("building execution insert: %w", err)
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting execution %s: %w", record.ID, err)
	}
	return nil
}

// Finish stores the terminal state of a run.
func (r *ExecutionRepo) Finish(ctx context.Context, record *execution.Record) error {
	data, err := encodeData(record.Data)
	if err != nil {
		return err
	}
	query, args, err := squirrel.
		Update("executions").
		Set("status", record.Status.String()).
		Set("finished", record.Finished).
		Set("stopped_at", record.StoppedAt).
		Set("wait_till", record.WaitTill).
		Set("data", data).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": record.ID.String()}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("building execution update: %w", err)
	}
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating execution %s: %w", record.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return execution.ErrNotFound
	}
	return nil
}

func encodeData(data map[string]any) ([]byte, error) {
	if data == nil {
		return nil, nil
	}
	encoded, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encoding execution data: %w", err)
	}
	return encoded, nil
}
