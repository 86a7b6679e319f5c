// Package postgres implements the repository interfaces on PostgreSQL.
package postgres

import sq "github.com/Masterminds/squirrel"

// psql renders $n placeholders as expected by the pgx driver.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
