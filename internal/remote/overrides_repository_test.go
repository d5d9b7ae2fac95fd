package remote_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"

	"github.com/limbo/ironlog/internal/remote"
	"github.com/limbo/ironlog/pkg/entity"
)

func TestGetOverridesByClientID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := remote.NewOverridesRepoWithConn(mock)
	ctx := context.Background()
	query := regexp.QuoteMeta(`SELECT client_id, exercise_id, seconds FROM rest_overrides WHERE client_id = $1;`)
	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(clientID).
			WillReturnRows(pgxmock.NewRows([]string{"client_id", "exercise_id", "seconds"}).
				AddRow(clientID, "bench", 120).
				AddRow(clientID, "squat", 240),
			)
		rows, err := repo.GetByClientID(ctx, clientID)
		assert.NoError(t, err)
		assert.Len(t, rows, 2)
		assert.Equal(t, 120, rows[0].Seconds)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(clientID).
			WillReturnError(errors.New("db error"))
		_, err := repo.GetByClientID(ctx, clientID)
		assert.Error(t, err)
	})
}

func TestDeleteOverridesByClientID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := remote.NewOverridesRepoWithConn(mock)
	ctx := context.Background()
	query := regexp.QuoteMeta(`DELETE FROM rest_overrides WHERE client_id = $1;`)
	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(clientID).
			WillReturnResult(pgxmock.NewResult("DELETE", 2))
		err := repo.DeleteByClientID(ctx, clientID)
		assert.NoError(t, err)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(clientID).
			WillReturnError(errors.New("db error"))
		err := repo.DeleteByClientID(ctx, clientID)
		assert.Error(t, err)
	})
}

func TestInsertOverride(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := remote.NewOverridesRepoWithConn(mock)
	ctx := context.Background()
	query := regexp.QuoteMeta(`INSERT INTO rest_overrides (client_id, exercise_id, seconds) VALUES ($1, $2, $3);`)
	row := entity.RestOverrideRow{
		ClientID:   clientID,
		ExerciseID: "bench",
		Seconds:    120,
	}
	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(row.ClientID, row.ExerciseID, row.Seconds).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		err := repo.Insert(ctx, &row)
		assert.NoError(t, err)
	})
	t.Run("nil row", func(t *testing.T) {
		err := repo.Insert(ctx, nil)
		assert.Error(t, err)
	})
}
