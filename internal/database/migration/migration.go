package migration

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"

	"docportal/internal/logger"
)

//go:embed sql/*.sql
var files embed.FS

// Source returns the embedded migration files.
func Source() (source.Driver, error) {
	return iofs.New(files, "sql")
}

// Run applies every pending up migration. It opens its own connection because
// closing the migrate instance also closes the database handle it was given.
// Cancelling ctx stops after the migration in progress.
func Run(ctx context.Context, dsn string, l *logger.Logger) error {
	if l == nil {
		l = logger.Nop()
	}
	l = l.Component("database")
	start := time.Now()

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("sql open: %w", err)
	}
	defer db.Close()

	driver, err := pgx.WithInstance(db, &pgx.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}
	src, err := Source()
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		return fmt.Errorf("migrate init: %w", err)
	}
	defer m.Close()
	m.Log = migrateLogger{l}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			m.GracefulStop <- true
		case <-done:
		}
	}()

	l.Info("db migration start")
	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		l.Info("db migration skip", "reason", "no change", "duration_ms", time.Since(start).Milliseconds())
		return nil
	case err != nil:
		l.Error("db migration failed", "err", err, "duration_ms", time.Since(start).Milliseconds())
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	l.Info("db migration success", "version", version, "dirty", dirty, "duration_ms", time.Since(start).Milliseconds())
	return nil
}

// migrateLogger adapts the application logger to migrate.Logger.
type migrateLogger struct {
	l *logger.Logger
}

func (m migrateLogger) Printf(format string, v ...any) {
	m.l.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (m migrateLogger) Verbose() bool { return false }
