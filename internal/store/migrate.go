package store

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrations embed.FS

// migrationLogger routes migrate's progress lines to zap at debug level.
type migrationLogger struct {
	log *zap.SugaredLogger
}

func (l migrationLogger) Printf(format string, v ...any) {
	l.log.Debugf(strings.TrimRight(format, "\n"), v...)
}

func (l migrationLogger) Verbose() bool {
	return false
}

func (s *Store) migrate() error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("reading embedded migrations: %w", err)
	}
	drv, err := sqlite3.WithInstance(s.db.DB, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("creating migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", drv)
	if err != nil {
		return fmt.Errorf("creating migrate instance: %w", err)
	}
	m.Log = migrationLogger{log: s.logger.Sugar()}

	// m.Close would close the shared *sql.DB, so only the source is released.
	defer src.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		version, dirty, _ := m.Version()
		return fmt.Errorf("applying migrations (version %d, dirty=%t): %w", version, dirty, err)
	}
	version, _, err := m.Version()
	if err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	s.logger.Debug("schema ready", zap.Uint("version", version))
	return nil
}
