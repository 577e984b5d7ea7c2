package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/IgorBayerl/ReportGenerator/go_test_report/internal/model"
)

// Index resolves test names against a SQLite symbol index. The index is
// produced by a source scanner and holds one row per test method signature
// and one row per declared type.
type Index struct {
	db *sql.DB
}

// New opens (or creates) the index database at path for writing.
func New(path string) (*Index, error) {
	return openDSN(path + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=ON")
}

func openDSN(dsn string) (*Index, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	return &Index{db: db}, nil
}

// Create opens the index at path for building, creating the file and its
// tables when they do not exist yet.
func Create(ctx context.Context, path string) (*Index, error) {
	idx, err := New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create symbol index %s: %w", path, err)
	}
	if err := idx.Migrate(ctx); err != nil {
		idx.Close()
		return nil, fmt.Errorf("failed to prepare symbol index %s: %w", path, err)
	}
	return idx, nil
}

// Open opens an existing index read-only. A missing file, or a database
// without the index tables, is an error; nothing is written to disk.
func Open(ctx context.Context, path string) (*Index, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open symbol index: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("failed to open symbol index %s: is a directory", path)
	}

	idx, err := openDSN("file:" + path + "?mode=ro&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open symbol index %s: %w", path, err)
	}
	if err := idx.verify(ctx); err != nil {
		idx.Close()
		return nil, fmt.Errorf("failed to open symbol index %s: %w", path, err)
	}
	return idx, nil
}

// verify checks that both index tables are present.
func (i *Index) verify(ctx context.Context) error {
	var tables int
	err := i.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('members', 'types')
	`).Scan(&tables)
	if err != nil {
		return err
	}
	if tables != 2 {
		return errors.New("not a symbol index: members or types table missing")
	}
	return nil
}

// Close closes the database connection.
func (i *Index) Close() error {
	return i.db.Close()
}

// Migrate creates the index tables.
func (i *Index) Migrate(ctx context.Context) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS members (
			signature TEXT PRIMARY KEY,
			file_key TEXT NOT NULL,
			file_path TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS types (
			type_name TEXT PRIMARY KEY,
			file_key TEXT NOT NULL,
			file_path TEXT
		)`,
	}
	for _, m := range migrations {
		if _, err := i.db.ExecContext(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

// AddMember records the file declaring a member signature such as
// "Lib.Class1Tests#TestWithInput(bool, bool)". An existing row is replaced.
func (i *Index) AddMember(ctx context.Context, signature string, file model.SourceFile) error {
	_, err := i.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO members (signature, file_key, file_path) VALUES (?, ?, ?)
	`, signature, file.Key, file.Path)
	return err
}

// AddType records the file declaring a fully qualified type name.
func (i *Index) AddType(ctx context.Context, typeName string, file model.SourceFile) error {
	_, err := i.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO types (type_name, file_key, file_path) VALUES (?, ?, ?)
	`, typeName, file.Key, file.Path)
	return err
}

// ResolveMember returns (nil, nil) when the signature is not indexed.
func (i *Index) ResolveMember(ctx context.Context, signature string) (*model.SourceFile, error) {
	row := i.db.QueryRowContext(ctx, `SELECT file_key, file_path FROM members WHERE signature = ?`, signature)
	return scanSourceFile(row)
}

// ResolveType returns (nil, nil) when the type is not indexed.
func (i *Index) ResolveType(ctx context.Context, typeName string) (*model.SourceFile, error) {
	row := i.db.QueryRowContext(ctx, `SELECT file_key, file_path FROM types WHERE type_name = ?`, typeName)
	return scanSourceFile(row)
}

func scanSourceFile(row *sql.Row) (*model.SourceFile, error) {
	var (
		key  string
		path sql.NullString
	)
	err := row.Scan(&key, &path)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &model.SourceFile{Key: key, Path: path.String}, nil
}
