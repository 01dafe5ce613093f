package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"messenger/internal/models"
	"messenger/internal/service"
)

// SQLStore keeps messages in SQLite or PostgreSQL.
type SQLStore struct {
	db      *sql.DB
	dialect dialect
	now     func() time.Time
}

var _ service.MessageStore = (*SQLStore)(nil)

// Open connects to target, verifies the connection and ensures the schema.
func Open(ctx context.Context, target string) (*SQLStore, error) {
	d, dsn, err := parseTarget(target)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if d.driver == sqliteDialect.driver {
		// One writer at a time; also keeps ":memory:" on a single database.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &SQLStore{db: db, dialect: d, now: time.Now}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure messages table exists: %w", err)
	}
	return s, nil
}

func (s *SQLStore) migrate(ctx context.Context) error {
	for _, stmt := range append(append([]string{}, s.dialect.schema...), commonSchema...) {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Reset drops every message and the id high-water mark, then recreates the schema.
func (s *SQLStore) Reset(ctx context.Context) error {
	for _, table := range []string{"messages", "message_ids"} {
		if _, err := s.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
			return fmt.Errorf("failed to drop %s: %w", table, err)
		}
	}
	return s.migrate(ctx)
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

// Driver reports the database/sql driver in use.
func (s *SQLStore) Driver() string {
	return s.dialect.driver
}

// withTx runs fn in a transaction that is rolled back unless fn succeeds
// and the commit goes through.
func (s *SQLStore) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

const messageColumns = `id, sender_id, receiver_id, time, content, read_status`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMessage(row rowScanner) (models.Message, error) {
	var msg models.Message
	err := row.Scan(&msg.ID, &msg.SenderID, &msg.ReceiverID, &msg.Time, &msg.Content, &msg.ReadStatus)
	return msg, err
}

func (s *SQLStore) GetByID(ctx context.Context, id int) (models.Message, error) {
	query := s.dialect.rebind(`SELECT ` + messageColumns + ` FROM messages WHERE id = ?`)
	msg, err := scanMessage(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Message{}, fmt.Errorf("message %d: %w", id, service.ErrNotFound)
	}
	if err != nil {
		return models.Message{}, fmt.Errorf("failed to load message %d: %w", id, err)
	}
	return msg, nil
}

func (s *SQLStore) List(ctx context.Context, filter models.MessageFilter) ([]models.Message, error) {
	var (
		conds []string
		args  []any
	)
	if filter.SenderID != nil {
		conds = append(conds, "sender_id = ?")
		args = append(args, *filter.SenderID)
	}
	if filter.ReceiverID != nil {
		conds = append(conds, "receiver_id = ?")
		args = append(args, *filter.ReceiverID)
	}
	if filter.ReadStatus != nil {
		conds = append(conds, "read_status = ?")
		args = append(args, *filter.ReadStatus)
	}

	query := `SELECT ` + messageColumns + ` FROM messages`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY id ASC`

	rows, err := s.db.QueryContext(ctx, s.dialect.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	results := []models.Message{}
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, msg)
	}
	return results, rows.Err()
}

// Insert stores msg from senderID under the next free id. The id is one past
// both the largest stored id and the largest id ever issued, so ids of
// deleted messages are never handed out again. Reading and bumping the
// high-water row happen in the same transaction as the insert.
func (s *SQLStore) Insert(ctx context.Context, senderID int, msg models.NewMessage) (int, error) {
	var newID int
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		next := s.dialect.rebind(`UPDATE message_ids
			SET last_id = ` + s.dialect.greatest + `(last_id, (SELECT COALESCE(MAX(id), 0) FROM messages)) + 1
			WHERE singleton = 1
			RETURNING last_id`)
		if err := tx.QueryRowContext(ctx, next).Scan(&newID); err != nil {
			return fmt.Errorf("failed to allocate message id: %w", err)
		}

		insert := s.dialect.rebind(`INSERT INTO messages (` + messageColumns + `) VALUES (?, ?, ?, ?, ?, ?)`)
		if _, err := tx.ExecContext(ctx, insert, newID, senderID, msg.ReceiverID, s.now().UTC(), msg.Content, false); err != nil {
			return fmt.Errorf("failed to insert message %d: %w", newID, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newID, nil
}

func (s *SQLStore) SetReadStatus(ctx context.Context, id int, read bool) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		query := s.dialect.rebind(`UPDATE messages SET read_status = ? WHERE id = ?`)
		res, err := tx.ExecContext(ctx, query, read, id)
		if err != nil {
			return fmt.Errorf("failed to update message %d: %w", id, err)
		}
		return expectOneRow(res, id)
	})
}

func (s *SQLStore) Delete(ctx context.Context, id int) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, s.dialect.rebind(`DELETE FROM messages WHERE id = ?`), id)
		if err != nil {
			return fmt.Errorf("failed to delete message %d: %w", id, err)
		}
		return expectOneRow(res, id)
	})
}

func expectOneRow(res sql.Result, id int) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("message %d: %w", id, service.ErrNotFound)
	}
	return nil
}
