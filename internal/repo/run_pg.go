package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"huf_go/internal/model"
)

type runRepoPG struct {
	pool *pgxpool.Pool
}

func NewRunRepoPG(pool *pgxpool.Pool) RunRepo {
	return &runRepoPG{pool: pool}
}

const runColumns = `id, op, input, output, extension, symbols, input_bytes, output_bytes, created_at`

func (r *runRepoPG) Save(ctx context.Context, run *model.Run) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO runs (`+runColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (id) DO NOTHING`,
		run.ID, string(run.Op), run.Input, run.Output, run.Extension,
		run.Symbols, run.InputBytes, run.OutputBytes, run.CreatedAt)
	return err
}

func (r *runRepoPG) FindByID(ctx context.Context, id string) (*model.Run, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+runColumns+` FROM runs WHERE id = $1`, id)
	run, err := scanRun(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return run, err
}

func (r *runRepoPG) List(ctx context.Context, limit int) ([]*model.Run, error) {
	q := `SELECT ` + runColumns + ` FROM runs ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT $1`
		args = append(args, limit)
	}
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Run, 0)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

func scanRun(row pgx.Row) (*model.Run, error) {
	var (
		run model.Run
		op  string
	)
	err := row.Scan(&run.ID, &op, &run.Input, &run.Output, &run.Extension,
		&run.Symbols, &run.InputBytes, &run.OutputBytes, &run.CreatedAt)
	if err != nil {
		return nil, err
	}
	run.Op = model.Op(op)
	return &run, nil
}
