package database

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrSessionClosed is returned by every operation on a closed Session.
var ErrSessionClosed = errors.New("database: session is closed")

// Session is a unit of work bound to one request.
//
// Add stages entities without touching the database. Flush writes the
// staged entities inside the session transaction, which begins lazily on
// the first operation. Commit flushes and commits; the next operation
// begins a new transaction. Lookups flush first, so they always see what
// was staged before them.
//
// A Session is not safe for concurrent use.
type Session struct {
	ctx     context.Context
	db      *gorm.DB
	tx      *gorm.DB
	pending []any
	closed  bool
}

// NewSession opens a unit of work whose statements run under ctx.
func (db *Database) NewSession(ctx context.Context) *Session {
	return &Session{ctx: ctx, db: db.ORM}
}

// Add stages entities for the next flush. Entities must be pointers to
// mapped structs. Adding an entity that is already staged is a no-op, and
// adding one that already has a primary key updates its row on flush.
// If any argument is invalid nothing is staged.
func (s *Session) Add(entities ...any) error {
	if s.closed {
		return ErrSessionClosed
	}

	for _, e := range entities {
		v := reflect.ValueOf(e)
		if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
			return fmt.Errorf("database: cannot add %T, want a non-nil pointer to a struct", e)
		}
	}

	for _, e := range entities {
		if !s.staged(e) {
			s.pending = append(s.pending, e)
		}
	}
	return nil
}

func (s *Session) staged(e any) bool {
	for _, p := range s.pending {
		if p == e {
			return true
		}
	}
	return false
}

// Pending reports how many entities are waiting for the next flush.
func (s *Session) Pending() int {
	return len(s.pending)
}

func (s *Session) begin() (*gorm.DB, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	if s.tx == nil {
		tx := s.db.WithContext(s.ctx).Begin()
		if tx.Error != nil {
			return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
		}
		s.tx = tx
	}
	return s.tx, nil
}

// Flush writes every staged entity in the order it was added. Identifiers
// are assigned to the entities as rows are inserted, and unsaved related
// entities are inserted with them. On failure the transaction is rolled
// back and the staged entities are discarded.
func (s *Session) Flush() error {
	if s.closed {
		return ErrSessionClosed
	}
	if len(s.pending) == 0 {
		return nil
	}

	tx, err := s.begin()
	if err != nil {
		return err
	}

	for _, e := range s.pending {
		if err := tx.Save(e).Error; err != nil {
			_ = s.Rollback()
			return fmt.Errorf("table:%s: failed to flush %T: %w", tableName(e), e, err)
		}
	}

	s.pending = nil
	return nil
}

// Commit flushes staged entities and commits the transaction.
func (s *Session) Commit() error {
	if err := s.Flush(); err != nil {
		return err
	}
	if s.tx == nil {
		return nil
	}

	err := s.tx.Commit().Error
	s.tx = nil
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback discards staged entities and the open transaction. Identifiers
// already assigned by a flush stay on the Go values.
func (s *Session) Rollback() error {
	s.pending = nil
	if s.tx == nil {
		return nil
	}

	err := s.tx.Rollback().Error
	s.tx = nil
	if err != nil && !errors.Is(err, gorm.ErrInvalidTransaction) {
		return fmt.Errorf("failed to roll back transaction: %w", err)
	}
	return nil
}

// Close rolls back anything not committed. It is safe to call twice.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	err := s.Rollback()
	s.closed = true
	return err
}

// query autoflushes and returns the transaction lookups run in.
func (s *Session) query() (*gorm.DB, error) {
	if err := s.Flush(); err != nil {
		return nil, err
	}
	return s.begin()
}

// tableName returns the table a mapped value lives in.
func tableName(v any) string {
	if t, ok := v.(interface{ TableName() string }); ok {
		return t.TableName()
	}
	return "record"
}

// Get loads the entity of type T with the given primary key. Named
// relations in preloads are loaded with it.
//
// A missing row is an error wrapping gorm.ErrRecordNotFound, prefixed with
// "table:<name>:" so the error handler can name the entity.
func Get[T any](s *Session, id int64, preloads ...string) (*T, error) {
	tx, err := s.query()
	if err != nil {
		return nil, err
	}

	for _, p := range preloads {
		tx = tx.Preload(p)
	}

	out := new(T)
	if err := tx.First(out, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("table:%s: %w", tableName(out), err)
		}
		return nil, err
	}
	return out, nil
}

// Find loads every entity of type T matching the condition, ordered by
// primary key.
func Find[T any](s *Session, query any, args ...any) ([]T, error) {
	tx, err := s.query()
	if err != nil {
		return nil, err
	}

	var out []T
	err = tx.Where(query, args...).
		Order(clause.OrderByColumn{Column: clause.Column{Table: clause.CurrentTable, Name: clause.PrimaryKey}}).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
