package sql

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/bcnelson/squares/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/*/*.sql
var embedMigrations embed.FS

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// isUniqueViolation reports whether err is a UNIQUE constraint violation,
// using the driver's typed error rather than its message.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgUniqueViolation
	}
	return false
}

// wrapUniqueError converts UNIQUE violations to domain.ErrAlreadyExists.
func wrapUniqueError(err error) error {
	if isUniqueViolation(err) {
		return domain.ErrAlreadyExists
	}
	return err
}

// Store implements the storage.Storage interface using SQL.
type Store struct {
	db     *sqlx.DB
	driver string
}

// New connects to the database and applies any pending migrations.
// Supported drivers are "sqlite3" and "postgres".
func New(driver, dsn string, logger *zap.Logger) (*Store, error) {
	if driver != "sqlite3" && driver != "postgres" {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	// SQLite allows a single writer; funnel everything through one connection
	// so concurrent inserts queue instead of failing with SQLITE_BUSY.
	if driver == "sqlite3" {
		db.SetMaxOpenConns(1)
	}

	// Run migrations
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(zap.NewStdLog(logger.Named("migrate")))
	if err := goose.SetDialect(driver); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting goose dialect: %w", err)
	}

	if err := goose.Up(db.DB, "migrations/"+driver); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &Store{db: db, driver: driver}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// SchemaVersion returns the currently applied migration version.
func (s *Store) SchemaVersion() (int64, error) {
	return goose.GetDBVersion(s.db.DB)
}

// ============================================
// Groups
// ============================================

func (s *Store) CreateGroup(ctx context.Context, group *domain.Group) error {
	err := s.db.GetContext(ctx, &group.ID,
		`INSERT INTO groups (name, row_numbers, col_numbers, reveal_time, created_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		group.Name, group.RowNumbers, group.ColNumbers, group.RevealTime.UTC(), group.CreatedAt.UTC())
	return wrapUniqueError(err)
}

func (s *Store) GetGroupByName(ctx context.Context, name string) (*domain.Group, error) {
	var group domain.Group
	err := s.db.GetContext(ctx, &group,
		`SELECT id, name, row_numbers, col_numbers, reveal_time, created_at FROM groups WHERE name = $1`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// ============================================
// Squares
// ============================================

const squareColumns = `id, group_id, "row", "col", player_name, square_name, user_id, claimed_at`

func (s *Store) CreateSquare(ctx context.Context, square *domain.Square) error {
	err := s.db.GetContext(ctx, &square.ID,
		`INSERT INTO squares (group_id, "row", "col", player_name, square_name, user_id, claimed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		square.GroupID, square.Row, square.Col, square.PlayerName, square.SquareName, square.UserID,
		square.ClaimedAt.UTC())
	return wrapUniqueError(err)
}

func (s *Store) GetSquare(ctx context.Context, groupID int64, row, col int) (*domain.Square, error) {
	var square domain.Square
	err := s.db.GetContext(ctx, &square,
		`SELECT `+squareColumns+` FROM squares WHERE group_id = $1 AND "row" = $2 AND "col" = $3`,
		groupID, row, col)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &square, nil
}

func (s *Store) ListSquares(ctx context.Context, groupID int64) ([]*domain.Square, error) {
	squares := make([]*domain.Square, 0)
	err := s.db.SelectContext(ctx, &squares,
		`SELECT `+squareColumns+` FROM squares WHERE group_id = $1 ORDER BY "row", "col"`, groupID)
	if err != nil {
		return nil, err
	}
	return squares, nil
}

func (s *Store) DeleteSquare(ctx context.Context, groupID int64, row, col int, userID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM squares WHERE group_id = $1 AND "row" = $2 AND "col" = $3 AND user_id = $4`,
		groupID, row, col, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
