package repository

import "testing"

func TestParseTarget(t *testing.T) {
	tests := []struct {
		target string
		driver string
		dsn    string
	}{
		{"sqlite:///./sql_app.db", "sqlite3", "file:./sql_app.db?_fk=on&_busy_timeout=5000&_txlock=immediate"},
		{"sqlite:////var/lib/app.db", "sqlite3", "file:/var/lib/app.db?_fk=on&_busy_timeout=5000&_txlock=immediate"},
		{"sqlite://", "sqlite3", "file::memory:?_fk=on&_busy_timeout=5000&_txlock=immediate"},
		{"data/messages.db", "sqlite3", "file:data/messages.db?_fk=on&_busy_timeout=5000&_txlock=immediate"},
		{"postgresql://u:p@db:5432/app", "postgres", "postgres://u:p@db:5432/app"},
		{"postgresql+psycopg2://u:p@db/app?sslmode=disable", "postgres", "postgres://u:p@db/app?sslmode=disable"},
		{"host=db port=5432 user=u dbname=app sslmode=disable", "postgres", "host=db port=5432 user=u dbname=app sslmode=disable"},
	}
	for _, tt := range tests {
		d, dsn, err := parseTarget(tt.target)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tt.target, err)
			continue
		}
		if d.driver != tt.driver || dsn != tt.dsn {
			t.Errorf("%q: got (%s, %s), want (%s, %s)", tt.target, d.driver, dsn, tt.driver, tt.dsn)
		}
	}

	for _, target := range []string{"mysql://root@db/app", "", "   "} {
		if _, _, err := parseTarget(target); err == nil {
			t.Errorf("%q: expected error", target)
		}
	}
}

func TestRebind(t *testing.T) {
	q := "UPDATE messages SET read_status = ? WHERE id = ?"
	if got := sqliteDialect.rebind(q); got != q {
		t.Errorf("sqlite rebind changed query: %s", got)
	}
	want := "UPDATE messages SET read_status = $1 WHERE id = $2"
	if got := postgresDialect.rebind(q); got != want {
		t.Errorf("postgres rebind: got %s, want %s", got, want)
	}
}
