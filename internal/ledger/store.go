package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/limbo/ironlog/pkg/cleanup"
	"github.com/limbo/ironlog/pkg/entity"
)

// Logical blob keys. The v1 key is a migration source only and is never
// written to.
const (
	keyLedgerV2  = "ledger.v2"
	keyLedgerV1  = "ledger.v1"
	keyOverrides = "rest_overrides"
	keyClientID  = "client_id"
)

const (
	defaultTemplate   = "push/pull/legs"
	defaultBodyweight = 75.0
)

type localBlob struct {
	Key   string `gorm:"column:key;primaryKey"`
	Value string `gorm:"column:value"`
}

func (localBlob) TableName() string { return "local_blobs" }

// legacy v1 shape: one weight per exercise log, no sets.
type legacyLog struct {
	Date       string  `json:"date"`
	ExerciseID string  `json:"exercise_id"`
	Weight     float64 `json:"weight"`
}

// Store is the single source of truth for the device. Every local read
// and write goes through it; the sync engine only mirrors what it holds.
type Store struct {
	db *gorm.DB
}

// Open creates or opens the sqlite file backing the local ledger.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create ledger directory: %w", err)
	}
	dsn := fmt.Sprintf("%s?_busy_timeout=5000", dbPath)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open local ledger: %w", err)
	}
	if err := db.AutoMigrate(&localBlob{}); err != nil {
		return nil, fmt.Errorf("migrate local ledger schema: %w", err)
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing local ledger",
		F: func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})
	return &Store{db: db}, nil
}

// NewStoreWithDB wires an already opened gorm handle, used by tests.
func NewStoreWithDB(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&localBlob{}); err != nil {
		return nil, fmt.Errorf("migrate local ledger schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Load returns the current snapshot. A missing or unparsable blob is
// treated as absent: a legacy blob is migrated if present, otherwise the
// seeded default comes back. Parse failures never surface to callers.
func (s *Store) Load(ctx context.Context) (*entity.LedgerSnapshot, error) {
	raw, found, err := s.get(ctx, keyLedgerV2)
	if err != nil {
		return nil, err
	}
	if found {
		var snap entity.LedgerSnapshot
		if err := sonic.Unmarshal([]byte(raw), &snap); err == nil {
			if snap.Logs == nil {
				snap.Logs = []entity.ExerciseLog{}
			}
			return &snap, nil
		}
		slog.Warn("unparsable ledger blob, treating as absent", slog.String("key", keyLedgerV2))
	}
	if migrated, err := s.Migrate(ctx); err != nil {
		return nil, err
	} else if migrated != nil {
		return migrated, nil
	}
	return defaultSnapshot(), nil
}

// Migrate performs the one-way v1 upgrade: each legacy weight becomes a
// single zero-rep SetRecord carrying that weight, persisted under the
// current key. The legacy blob stays untouched so the upgrade is
// idempotent until the v2 key exists. Returns nil when there is nothing
// to migrate.
func (s *Store) Migrate(ctx context.Context) (*entity.LedgerSnapshot, error) {
	raw, found, err := s.get(ctx, keyLedgerV1)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	var legacy []legacyLog
	if err := sonic.Unmarshal([]byte(raw), &legacy); err != nil {
		slog.Warn("unparsable legacy ledger blob, treating as absent", slog.String("key", keyLedgerV1))
		return nil, nil
	}
	snap := defaultSnapshot()
	for _, l := range legacy {
		snap.Logs = append(snap.Logs, entity.ExerciseLog{
			Date:       l.Date,
			ExerciseID: l.ExerciseID,
			Sets:       []entity.SetRecord{{Reps: 0, Weight: l.Weight}},
		})
	}
	if err := s.Save(ctx, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// Save overwrites the whole current-version record. Callers hand over the
// full next state, there are no field-level updates at this layer.
func (s *Store) Save(ctx context.Context, snap *entity.LedgerSnapshot) error {
	raw, err := sonic.Marshal(snap)
	if err != nil {
		return errors.New("marshalling ledger snapshot error: " + err.Error())
	}
	return s.put(ctx, keyLedgerV2, string(raw))
}

// RestOverrides returns the exerciseID -> seconds mapping. Absent or
// unparsable data yields an empty map.
func (s *Store) RestOverrides(ctx context.Context) (map[string]int, error) {
	raw, found, err := s.get(ctx, keyOverrides)
	if err != nil {
		return nil, err
	}
	overrides := make(map[string]int)
	if !found {
		return overrides, nil
	}
	if err := sonic.Unmarshal([]byte(raw), &overrides); err != nil {
		slog.Warn("unparsable rest override blob, treating as absent", slog.String("key", keyOverrides))
		return make(map[string]int), nil
	}
	return overrides, nil
}

func (s *Store) SaveRestOverrides(ctx context.Context, overrides map[string]int) error {
	raw, err := sonic.Marshal(overrides)
	if err != nil {
		return errors.New("marshalling rest overrides error: " + err.Error())
	}
	return s.put(ctx, keyOverrides, string(raw))
}

// ClientID returns the durable device identity, generating and persisting
// a fresh one on first use.
func (s *Store) ClientID(ctx context.Context) (string, error) {
	raw, found, err := s.get(ctx, keyClientID)
	if err != nil {
		return "", err
	}
	if found && raw != "" {
		return raw, nil
	}
	id := uuid.NewString()
	if err := s.put(ctx, keyClientID, id); err != nil {
		return "", err
	}
	return id, nil
}

func defaultSnapshot() *entity.LedgerSnapshot {
	return &entity.LedgerSnapshot{
		Logs:       []entity.ExerciseLog{},
		Template:   defaultTemplate,
		Bodyweight: defaultBodyweight,
	}
}

func (s *Store) get(ctx context.Context, key string) (string, bool, error) {
	var blob localBlob
	err := s.db.WithContext(ctx).First(&blob, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, errors.New("reading local blob error: " + err.Error())
	}
	return blob.Value, true, nil
}

func (s *Store) put(ctx context.Context, key, value string) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&localBlob{Key: key, Value: value}).Error
	if err != nil {
		return errors.New("writing local blob error: " + err.Error())
	}
	return nil
}
