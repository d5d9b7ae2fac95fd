package remote

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/limbo/ironlog/pkg/entity"
)

type LogsRepositoryI interface {
	// Checks the remote store is reachable. Consulted before every attempt
	Ping(ctx context.Context) error
	// Lists all log rows for a client, ordered by date ascending
	GetByClientID(ctx context.Context, clientID string) ([]entity.TrainingLogRow, error)
	// Inserts the row or overwrites the one with the same (client_id, log_date, exercise_id)
	Upsert(ctx context.Context, row *entity.TrainingLogRow) error
}

type OverridesRepositoryI interface {
	Ping(ctx context.Context) error
	// Lists all rest override rows for a client
	GetByClientID(ctx context.Context, clientID string) ([]entity.RestOverrideRow, error)
	// Removes every override row for a client
	DeleteByClientID(ctx context.Context, clientID string) error
	// Inserts one override row
	Insert(ctx context.Context, row *entity.RestOverrideRow) error
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}

// Configured reports whether a remote store was set up at all. An empty
// address means the device runs purely local.
func (pgcfg *PGCfg) Configured() bool {
	return pgcfg != nil && pgcfg.Address != ""
}
