package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/XSAM/otelsql"
	_ "github.com/jackc/pgx/v5/stdlib"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"docportal/internal/config"
	"docportal/internal/logger"
)

const pingTimeout = 5 * time.Second

var (
	sqlOpen = sql.Open

	errIncompleteConfig = errors.New("invalid database config: host, port, user, and name are required")
)

// tracedDriver wraps pgx with otelsql once per process.
var tracedDriver = sync.OnceValues(func() (string, error) {
	return otelsql.Register("pgx",
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithSQLCommenter(true),
	)
})

// BuildPostgresDSN renders c as a postgres:// URL. Session parameters
// (application_name, timezone) are passed through to the server.
func BuildPostgresDSN(c config.DatabaseConfig) (string, error) {
	if c.Host == "" || c.Port == "" || c.User == "" || c.Name == "" {
		return "", errIncompleteConfig
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   url.User(c.User),
		Host:   c.Host + ":" + c.Port,
		Path:   c.Name,
	}
	if c.Password != "" {
		u.User = url.UserPassword(c.User, c.Password)
	}

	q := url.Values{}
	for k, v := range map[string]string{
		"sslmode":          c.SSLMode,
		"application_name": c.ApplicationName,
		"timezone":         c.TimeZone,
	} {
		if v != "" {
			q.Set(k, v)
		}
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// NewPostgres opens the traced pool the repositories share and fails unless the
// server answers a ping within five seconds.
func NewPostgres(ctx context.Context, c config.DatabaseConfig, l *logger.Logger) (*sql.DB, error) {
	if l == nil {
		l = logger.Nop()
	}
	dsn, err := BuildPostgresDSN(c)
	if err != nil {
		return nil, err
	}

	driverName, err := tracedDriver()
	if err != nil {
		return nil, fmt.Errorf("failed to register otelsql: %w", err)
	}

	db, err := sqlOpen(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	configurePool(db, c)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	l.Component("database").Info("database connected",
		"db_host", c.Host,
		"db_name", c.Name,
		"timezone", c.TimeZone,
		"max_open_conns", c.MaxOpenConns,
		"max_idle_conns", c.MaxIdleConns,
	)
	return db, nil
}

// configurePool applies the non-zero pool limits of c.
func configurePool(db *sql.DB, c config.DatabaseConfig) {
	if c.MaxOpenConns > 0 {
		db.SetMaxOpenConns(c.MaxOpenConns)
	}
	if c.MaxIdleConns > 0 {
		db.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.ConnMaxLifetimeSec > 0 {
		db.SetConnMaxLifetime(time.Duration(c.ConnMaxLifetimeSec) * time.Second)
	}
}
