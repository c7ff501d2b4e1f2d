package db

import (
	"github.com/nazir19980501/mapty/internal/config"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Several sessions append at once; let writers wait instead of failing with
// SQLITE_BUSY.
const sqlitePragmas = "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

// ConnectSQLite opens the file-backed database used by the default store driver.
func ConnectSQLite(cfg config.Config) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(cfg.SQLitePath+sqlitePragmas), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}
