// Package store persists contacts in a single SQLite table.
//
// A Store holds no open connection. Every operation opens the database,
// runs its statements on one connection, and closes it before returning.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/smileynet/contacts/internal/contact"
)

// ErrDuplicateEmail indicates another contact already uses the email.
var ErrDuplicateEmail = errors.New("store: email already exists")

const schema = `
CREATE TABLE IF NOT EXISTS contacts (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	nom       TEXT NOT NULL,
	prenom    TEXT NOT NULL,
	email     TEXT NOT NULL UNIQUE,
	phone     TEXT NOT NULL,
	categorie TEXT NOT NULL
)`

// Store runs contact operations against the SQLite file at path.
type Store struct {
	path        string
	busyTimeout time.Duration
	logger      *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithBusyTimeout sets how long a statement waits on a locked database file.
func WithBusyTimeout(d time.Duration) Option {
	return func(s *Store) {
		s.busyTimeout = d
	}
}

// WithLogger sets the logger used for operation traces.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// New returns a Store for the database file at path. Nothing is opened until
// the first operation.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path:        path,
		busyTimeout: 5 * time.Second,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// withConn opens the database, hands one connection to fn, and releases
// both before returning.
func (s *Store) withConn(ctx context.Context, fn func(*sql.Conn) error) (err error) {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("store: creating directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("store: opening %s: %w", s.path, err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("store: closing %s: %w", s.path, cerr)
		}
	}()
	db.SetMaxOpenConns(1)

	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("store: connecting to %s: %w", s.path, err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, fmt.Sprintf("PRAGMA busy_timeout = %d", s.busyTimeout.Milliseconds())); err != nil {
		return fmt.Errorf("store: setting busy timeout: %w", err)
	}

	return fn(conn)
}

// EnsureSchema creates the contacts table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		if _, err := conn.ExecContext(ctx, schema); err != nil {
			return fmt.Errorf("store: creating schema: %w", err)
		}
		return nil
	})
	if err == nil {
		s.logger.Debug("schema ready", "path", s.path)
	}
	return err
}

// Insert stores a new contact and returns its assigned id. It returns
// ErrDuplicateEmail without inserting when the email is already taken.
func (s *Store) Insert(ctx context.Context, f contact.Fields) (int64, error) {
	var id int64
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		var n int
		if err := conn.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM contacts WHERE email = ?", f.Email,
		).Scan(&n); err != nil {
			return fmt.Errorf("store: checking email: %w", err)
		}
		if n > 0 {
			return ErrDuplicateEmail
		}

		res, err := conn.ExecContext(ctx,
			"INSERT INTO contacts (nom, prenom, email, phone, categorie) VALUES (?, ?, ?, ?, ?)",
			f.Name, f.Surname, f.Email, f.Phone, string(f.Category),
		)
		if err != nil {
			return wrapConstraint("inserting contact", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("store: reading inserted id: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.logger.Debug("contact inserted", "id", id)
	return id, nil
}

// Update overwrites every field of the contact with the given id.
// An unknown id matches no row and is not an error.
func (s *Store) Update(ctx context.Context, id int64, f contact.Fields) error {
	var affected int64
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		var n int
		if err := conn.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM contacts WHERE email = ? AND id <> ?", f.Email, id,
		).Scan(&n); err != nil {
			return fmt.Errorf("store: checking email: %w", err)
		}
		if n > 0 {
			return ErrDuplicateEmail
		}

		res, err := conn.ExecContext(ctx,
			"UPDATE contacts SET nom = ?, prenom = ?, email = ?, phone = ?, categorie = ? WHERE id = ?",
			f.Name, f.Surname, f.Email, f.Phone, string(f.Category), id,
		)
		if err != nil {
			return wrapConstraint("updating contact", err)
		}
		affected, _ = res.RowsAffected()
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Debug("contact updated", "id", id, "rows", affected)
	return nil
}

// Delete removes the contact with the given id. An unknown id is not an error.
func (s *Store) Delete(ctx context.Context, id int64) error {
	var affected int64
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx, "DELETE FROM contacts WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("store: deleting contact: %w", err)
		}
		affected, _ = res.RowsAffected()
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Debug("contact deleted", "id", id, "rows", affected)
	return nil
}

// SelectAll returns every contact ordered by id.
func (s *Store) SelectAll(ctx context.Context) ([]contact.Contact, error) {
	var rows []contact.Contact
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		r, err := conn.QueryContext(ctx,
			"SELECT id, nom, prenom, email, phone, categorie FROM contacts ORDER BY id",
		)
		if err != nil {
			return fmt.Errorf("store: listing contacts: %w", err)
		}
		defer r.Close()

		for r.Next() {
			var c contact.Contact
			var category string
			if err := r.Scan(&c.ID, &c.Name, &c.Surname, &c.Email, &c.Phone, &category); err != nil {
				return fmt.Errorf("store: scanning contact: %w", err)
			}
			c.Category = normalizeCategory(category)
			rows = append(rows, c)
		}
		if err := r.Err(); err != nil {
			return fmt.Errorf("store: listing contacts: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Debug("contacts listed", "rows", len(rows))
	return rows, nil
}

// normalizeCategory maps stored labels onto the closed set, keeping
// unrecognized values as stored.
func normalizeCategory(v string) contact.Category {
	if c, err := contact.ParseCategory(v); err == nil {
		return c
	}
	return contact.Category(v)
}

// wrapConstraint maps a UNIQUE violation to ErrDuplicateEmail and wraps
// anything else.
func wrapConstraint(op string, err error) error {
	var se *sqlite.Error
	if errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return ErrDuplicateEmail
	}
	return fmt.Errorf("store: %s: %w", op, err)
}
