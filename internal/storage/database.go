package storage

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/RichStephens/killzone/internal/game"
	"github.com/RichStephens/killzone/internal/logging"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenAndMigrate opens the sqlite database at dataSourceName and keeps the
// schema current with AutoMigrate. A plain file path gets its parent
// directory created first.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	if isFilePath(dataSourceName) {
		if dir := filepath.Dir(dataSourceName); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
		}
	}
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// sqlite allows one writer; a single connection also keeps ":memory:"
	// databases from splitting across the pool.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&game.CombatRecord{}, &game.FighterStats{}); err != nil {
		return nil, err
	}
	logging.Info("database ready", logging.Fields{"dsn": dataSourceName})
	return db, nil
}

func isFilePath(dsn string) bool {
	return dsn != "" && dsn != ":memory:" && !strings.HasPrefix(dsn, "file:")
}
