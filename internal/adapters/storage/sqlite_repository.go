package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/renato0307/keebs/internal/domain"
	"github.com/renato0307/keebs/internal/logging"
	"github.com/renato0307/keebs/internal/ports"
)

const maxRetries = 3

// SQLiteRepository implements ports.OverrideRepository using GORM
type SQLiteRepository struct {
	db *gorm.DB
}

// Verify interface compliance at compile time
var _ ports.OverrideRepository = (*SQLiteRepository)(nil)

// gormLogger routes GORM output through the keebs logger
type gormLogger struct {
	level logger.LogLevel
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &gormLogger{level: level}
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Info {
		logging.Logger.Info(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Warn {
		logging.Logger.Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Error {
		logging.Logger.Error(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level < logger.Info {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		logging.Logger.Error("gorm query error", "error", err, "duration", elapsed, "sql", sql, "rows", rows)
	case elapsed > 200*time.Millisecond:
		logging.Logger.Warn("slow query", "duration", elapsed, "sql", sql, "rows", rows)
	default:
		logging.Logger.Debug("gorm query", "duration", elapsed, "sql", sql, "rows", rows)
	}
}

func newGormLogger() logger.Interface {
	if os.Getenv(logging.EnvDebug) == "1" {
		return (&gormLogger{}).LogMode(logger.Info)
	}
	return (&gormLogger{}).LogMode(logger.Silent)
}

// NewSQLiteRepository opens (creating if needed) the override database at dbPath
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if len(dbPath) > 0 && dbPath[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(homeDir, dbPath[1:])
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		PrepareStmt: false,
		NowFunc:     func() time.Time { return time.Now().UTC() },
		Logger:      newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL lets the CLI edit overrides while a demo or server session reads them
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")
	db.Exec("PRAGMA synchronous=NORMAL")

	if err := db.AutoMigrate(&OverrideModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate shortcut_overrides schema: %w", err)
	}

	logging.Logger.Debug("Opened override database", "path", dbPath)
	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// List implements OverrideReader.List
func (r *SQLiteRepository) List(ctx context.Context) (domain.ShortcutMap, error) {
	var models []OverrideModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Order("id").Find(&models).Error
	}, maxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to list overrides: %w", err)
	}
	return overrideModelsToMap(models), nil
}

// Set implements OverrideWriter.Set, inserting or replacing the override for id
func (r *SQLiteRepository) Set(ctx context.Context, id, shortcut string) error {
	if id == "" {
		return domain.ErrMissingID
	}

	model := OverrideModel{ID: id, Shortcut: shortcut}
	return withRetry(func() error {
		return r.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"shortcut", "updated_at"}),
		}).Create(&model).Error
	}, maxRetries)
}

// Delete implements OverrideWriter.Delete
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	return withRetry(func() error {
		result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&OverrideModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: %s", domain.ErrOverrideNotFound, id)
		}
		return nil
	}, maxRetries)
}

// DeleteAll implements OverrideWriter.DeleteAll
func (r *SQLiteRepository) DeleteAll(ctx context.Context) error {
	return withRetry(func() error {
		return r.db.WithContext(ctx).
			Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&OverrideModel{}).Error
	}, maxRetries)
}

// withRetry retries fn while SQLite reports the database busy or locked
func withRetry(fn func() error, maxRetries int) error {
	for i := 0; i < maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}

		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
			time.Sleep(time.Millisecond * time.Duration(50*(i+1)))
			continue
		}

		return err
	}
	return fmt.Errorf("operation failed after %d retries", maxRetries)
}
