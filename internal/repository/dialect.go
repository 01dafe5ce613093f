package repository

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

type dialect struct {
	driver   string
	greatest string
	schema   []string
}

var sqliteDialect = dialect{
	driver:   "sqlite3",
	greatest: "MAX",
	schema: []string{
		`CREATE TABLE IF NOT EXISTS messages (
			id INTEGER PRIMARY KEY,
			sender_id INTEGER NOT NULL,
			receiver_id INTEGER NOT NULL,
			time DATETIME NOT NULL,
			content TEXT NOT NULL,
			read_status BOOLEAN NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS message_ids (
			singleton INTEGER PRIMARY KEY CHECK (singleton = 1),
			last_id INTEGER NOT NULL
		)`,
	},
}

var postgresDialect = dialect{
	driver:   "postgres",
	greatest: "GREATEST",
	schema: []string{
		`CREATE TABLE IF NOT EXISTS messages (
			id INTEGER PRIMARY KEY,
			sender_id INTEGER NOT NULL,
			receiver_id INTEGER NOT NULL,
			time TIMESTAMPTZ NOT NULL,
			content TEXT NOT NULL,
			read_status BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE TABLE IF NOT EXISTS message_ids (
			singleton INTEGER PRIMARY KEY CHECK (singleton = 1),
			last_id INTEGER NOT NULL
		)`,
	},
}

// Shared by both dialects.
var commonSchema = []string{
	`CREATE INDEX IF NOT EXISTS ix_messages_sender_id ON messages (sender_id)`,
	`CREATE INDEX IF NOT EXISTS ix_messages_receiver_id ON messages (receiver_id)`,
	`CREATE INDEX IF NOT EXISTS ix_messages_time ON messages (time)`,
	`CREATE INDEX IF NOT EXISTS ix_messages_read_status ON messages (read_status)`,
	`INSERT INTO message_ids (singleton, last_id)
		SELECT 1, COALESCE(MAX(id), 0) FROM messages WHERE true
		ON CONFLICT (singleton) DO NOTHING`,
}

// rebind rewrites ? placeholders into the driver's positional form.
func (d dialect) rebind(query string) string {
	if d.driver != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// parseTarget maps a connection target onto a dialect and a driver DSN.
// It accepts SQLAlchemy-style URLs ("sqlite:///./sql_app.db",
// "postgresql+psycopg2://...") as well as plain lib/pq DSNs and file paths.
func parseTarget(target string) (dialect, string, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return dialect{}, "", errors.New("empty database target")
	}

	scheme, rest, hasScheme := strings.Cut(target, "://")
	if hasScheme {
		scheme, _, _ = strings.Cut(scheme, "+")
		switch strings.ToLower(scheme) {
		case "postgres", "postgresql":
			return postgresDialect, "postgres://" + rest, nil
		case "sqlite":
			path := strings.TrimPrefix(rest, "/")
			if path == "" {
				path = ":memory:"
			}
			return sqliteDialect, sqliteDSN(path), nil
		default:
			return dialect{}, "", fmt.Errorf("unsupported database scheme %q", scheme)
		}
	}

	if strings.Contains(target, "host=") || strings.Contains(target, "dbname=") {
		return postgresDialect, target, nil
	}
	return sqliteDialect, sqliteDSN(strings.TrimPrefix(target, "file:")), nil
}

func sqliteDSN(path string) string {
	return "file:" + path + "?_fk=on&_busy_timeout=5000&_txlock=immediate"
}
