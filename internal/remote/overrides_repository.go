package remote

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/limbo/ironlog/pkg/cleanup"
	"github.com/limbo/ironlog/pkg/entity"
)

// OverridesRepository mirrors rest overrides on the remote rest_overrides
// table, keyed by (client_id, exercise_id). Replacement is delete-then-
// insert driven by the sync engine, not a transaction here.
type OverridesRepository struct {
	conn PgConnection
}

func NewOverridesRepo(cfg DBConfig) *OverridesRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for overridesRepo error: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &OverridesRepository{
		conn: pool,
	}
}

func NewOverridesRepoWithConn(conn PgConnection) *OverridesRepository {
	return &OverridesRepository{
		conn: conn,
	}
}

func (or *OverridesRepository) Ping(ctx context.Context) error {
	return or.conn.Ping(ctx)
}

func (or *OverridesRepository) GetByClientID(ctx context.Context, clientID string) ([]entity.RestOverrideRow, error) {
	rows, err := or.conn.Query(ctx, `SELECT client_id, exercise_id, seconds FROM rest_overrides WHERE client_id = $1;`, clientID)
	if err != nil {
		return nil, errors.New("getting overrides by client id error: " + err.Error())
	}
	defer rows.Close()
	overrides := make([]entity.RestOverrideRow, 0)
	for rows.Next() {
		var row entity.RestOverrideRow
		err = rows.Scan(&row.ClientID, &row.ExerciseID, &row.Seconds)
		if err != nil {
			return nil, errors.New("unmarshalling override row error: " + err.Error())
		}
		overrides = append(overrides, row)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return overrides, nil
}

func (or *OverridesRepository) DeleteByClientID(ctx context.Context, clientID string) error {
	_, err := or.conn.Exec(ctx, `DELETE FROM rest_overrides WHERE client_id = $1;`, clientID)
	if err != nil {
		return errors.New("deleting overrides error: " + err.Error())
	}
	return nil
}

func (or *OverridesRepository) Insert(ctx context.Context, row *entity.RestOverrideRow) error {
	if row == nil {
		return errors.New("override row is nil")
	}
	_, err := or.conn.Exec(ctx, `INSERT INTO rest_overrides (client_id, exercise_id, seconds) VALUES ($1, $2, $3);`,
		row.ClientID,
		row.ExerciseID,
		row.Seconds,
	)
	if err != nil {
		return errors.New("inserting override row error: " + err.Error())
	}
	return nil
}
