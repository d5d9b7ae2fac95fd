package ledger_test

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/limbo/ironlog/internal/ledger"
	"github.com/limbo/ironlog/pkg/entity"
)

func openTestStore(t *testing.T) *ledger.Store {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatal(err)
	}
	store, err := ledger.NewStoreWithDB(db)
	if err != nil {
		t.Fatal(err)
	}
	return store
}

func seedBlob(t *testing.T, store *ledger.Store, key, value string) {
	t.Helper()
	err := store.PutBlob(context.Background(), key, value)
	if err != nil {
		t.Fatal(err)
	}
}

func TestLoadDefaults(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	t.Run("empty store returns seeded default", func(t *testing.T) {
		snap, err := store.Load(ctx)
		assert.NoError(t, err)
		assert.Empty(t, snap.Logs)
		assert.Equal(t, "push/pull/legs", snap.Template)
		assert.Equal(t, 75.0, snap.Bodyweight)
	})
	t.Run("malformed blob is treated as absent", func(t *testing.T) {
		seedBlob(t, store, "ledger.v2", "{not json")
		snap, err := store.Load(ctx)
		assert.NoError(t, err)
		assert.Empty(t, snap.Logs)
	})
}

func TestSaveLoadRoundtrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	snap, err := store.Load(ctx)
	assert.NoError(t, err)
	snap.Logs = append(snap.Logs, entity.ExerciseLog{
		Date:       "2024-03-01",
		ExerciseID: "bench",
		Sets:       []entity.SetRecord{{Reps: 8, Weight: 60, RIR: 2}},
	})
	snap.Bodyweight = 82.5
	assert.NoError(t, store.Save(ctx, snap))

	loaded, err := store.Load(ctx)
	assert.NoError(t, err)
	assert.Len(t, loaded.Logs, 1)
	assert.Equal(t, "bench", loaded.Logs[0].ExerciseID)
	assert.Equal(t, 82.5, loaded.Bodyweight)
}

func TestLegacyMigration(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	seedBlob(t, store, "ledger.v1", `[{"date":"2023-11-01","exercise_id":"squat","weight":120}]`)

	first, err := store.Load(ctx)
	assert.NoError(t, err)
	assert.Len(t, first.Logs, 1)
	assert.Equal(t, "squat", first.Logs[0].ExerciseID)
	assert.Len(t, first.Logs[0].Sets, 1)
	assert.Equal(t, 0, first.Logs[0].Sets[0].Reps)
	assert.Equal(t, 120.0, first.Logs[0].Sets[0].Weight)

	t.Run("idempotent across loads", func(t *testing.T) {
		second, err := store.Load(ctx)
		assert.NoError(t, err)
		assert.Len(t, second.Logs, 1)
		assert.Equal(t, first.Logs[0].Date, second.Logs[0].Date)
		assert.Equal(t, first.Logs[0].ExerciseID, second.Logs[0].ExerciseID)
		assert.Equal(t, first.Logs[0].Sets, second.Logs[0].Sets)
		assert.Equal(t, first.Template, second.Template)
		assert.Equal(t, first.Bodyweight, second.Bodyweight)
	})
	t.Run("legacy blob stays untouched", func(t *testing.T) {
		raw, found, err := store.GetBlob(ctx, "ledger.v1")
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Contains(t, raw, "120")
	})
	t.Run("malformed legacy blob falls back to default", func(t *testing.T) {
		other := openTestStore(t)
		seedBlob(t, other, "ledger.v1", "???")
		snap, err := other.Load(ctx)
		assert.NoError(t, err)
		assert.Empty(t, snap.Logs)
	})
}

func TestRestOverrides(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	t.Run("absent mapping is empty", func(t *testing.T) {
		overrides, err := store.RestOverrides(ctx)
		assert.NoError(t, err)
		assert.Empty(t, overrides)
	})
	t.Run("roundtrip", func(t *testing.T) {
		err := store.SaveRestOverrides(ctx, map[string]int{"bench": 120})
		assert.NoError(t, err)
		overrides, err := store.RestOverrides(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 120, overrides["bench"])
	})
	t.Run("malformed mapping is treated as absent", func(t *testing.T) {
		seedBlob(t, store, "rest_overrides", "[broken")
		overrides, err := store.RestOverrides(ctx)
		assert.NoError(t, err)
		assert.Empty(t, overrides)
	})
}

func TestClientID(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	first, err := store.ClientID(ctx)
	assert.NoError(t, err)
	assert.NotEmpty(t, first)

	second, err := store.ClientID(ctx)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}
