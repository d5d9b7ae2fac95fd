package remote

import (
	"context"
	"errors"
	"log"

	"github.com/bytedance/sonic"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/limbo/ironlog/pkg/cleanup"
	"github.com/limbo/ironlog/pkg/entity"
)

// LogsRepository mirrors ledger rows on the remote training_logs table,
// keyed by (client_id, log_date, exercise_id).
type LogsRepository struct {
	conn PgConnection
}

func NewLogsRepo(cfg DBConfig) *LogsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for logsRepo error: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &LogsRepository{
		conn: pool,
	}
}

func NewLogsRepoWithConn(conn PgConnection) *LogsRepository {
	return &LogsRepository{
		conn: conn,
	}
}

func (lr *LogsRepository) Ping(ctx context.Context) error {
	return lr.conn.Ping(ctx)
}

func (lr *LogsRepository) GetByClientID(ctx context.Context, clientID string) ([]entity.TrainingLogRow, error) {
	rows, err := lr.conn.Query(ctx, `SELECT client_id, log_date, exercise_id, day_label, exercise_name, sets, updated_at
		FROM training_logs WHERE client_id = $1 ORDER BY log_date;`, clientID)
	if err != nil {
		return nil, errors.New("getting logs by client id error: " + err.Error())
	}
	defer rows.Close()
	logs := make([]entity.TrainingLogRow, 0)
	for rows.Next() {
		var row entity.TrainingLogRow
		var rawSets string
		err = rows.Scan(&row.ClientID, &row.Date, &row.ExerciseID, &row.DayLabel, &row.ExerciseName, &rawSets, &row.UpdatedAt)
		if err != nil {
			return nil, errors.New("unmarshalling log row error: " + err.Error())
		}
		if err := sonic.Unmarshal([]byte(rawSets), &row.Sets); err != nil {
			return nil, errors.New("decoding remote set list error: " + err.Error())
		}
		logs = append(logs, row)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return logs, nil
}

func (lr *LogsRepository) Upsert(ctx context.Context, row *entity.TrainingLogRow) error {
	if row == nil {
		return errors.New("log row is nil")
	}
	rawSets, err := sonic.Marshal(row.Sets)
	if err != nil {
		return errors.New("encoding set list error: " + err.Error())
	}
	_, err = lr.conn.Exec(ctx, `INSERT INTO training_logs (client_id, log_date, exercise_id, day_label, exercise_name, sets, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (client_id, log_date, exercise_id)
		DO UPDATE SET day_label = $4, exercise_name = $5, sets = $6, updated_at = NOW();`,
		row.ClientID,
		row.Date,
		row.ExerciseID,
		row.DayLabel,
		row.ExerciseName,
		string(rawSets),
	)
	if err != nil {
		return errors.New("upserting log row error: " + err.Error())
	}
	return nil
}
