package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/flowgate/flowgate/engine/workflow"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
)

// WorkflowRepo implements workflow.Repository over PostgreSQL.
type WorkflowRepo struct {
	db DBInterface
}

func NewWorkflowRepo(db DBInterface) *WorkflowRepo {
	return &WorkflowRepo{db: db}
}

type workflowDB struct {
	ID                     string `db:"id"`
	Name                   string `db:"name"`
	Nodes                  []byte `db:"nodes"`
	IsArchived             bool   `db:"is_archived"`
	AvailableForInvocation bool   `db:"available_for_invocation"`
}

func (w *workflowDB) toConfig() (*workflow.Config, error) {
	cfg := &workflow.Config{
		ID:                     w.ID,
		Name:                   w.Name,
		IsArchived:             w.IsArchived,
		AvailableForInvocation: w.AvailableForInvocation,
	}
	if len(w.Nodes) > 0 {
		if err := json.Unmarshal(w.Nodes, &cfg.Nodes); err != nil {
			return nil, fmt.Errorf("decoding workflow nodes: %w", err)
		}
	}
	return cfg, nil
}

func (r *WorkflowRepo) Get(ctx context.Context, workflowID string) (*workflow.Config, error) {
	query, args, err := squirrel.
		Select("id", "name", "nodes", "is_archived", "available_for_invocation").
		From("workflows").
		Where(squirrel.Eq{"id": workflowID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building workflow query: %w", err)
	}
	var row workflowDB
	if err := pgxscan.Get(ctx, r.db, &row, query, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, workflow.ErrNotFound
		}
		return nil, fmt.Errorf("scanning workflow %s: %w", workflowID, err)
	}
	return row.toConfig()
}

// Upsert stores a workflow definition, replacing any previous version.
func (r *WorkflowRepo) Upsert(ctx context.Context, cfg *workflow.Config) error {
	nodes, err := json.Marshal(cfg.Nodes)
	if err != nil {
		return fmt.Errorf("encoding workflow nodes: %w", err)
	}
	query, args, err := squirrel.
		Insert("workflows").
		Columns("id", "name", "nodes", "is_archived", "available_for_invocation").
		Values(cfg.ID, cfg.Name, nodes, cfg.IsArchived, cfg.AvailableForInvocation).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			nodes = EXCLUDED.nodes,
			is_archived = EXCLUDED.is_archived,
			available_for_invocation = EXCLUDED.available_for_invocation,
			updated_at = now()`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("building workflow upsert: %w", err)
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("upserting workflow %s: %w", cfg.ID, err)
	}
	return nil
}
