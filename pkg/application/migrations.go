package application

import (
	"context"
	"database/sql"
	"embed"
	"io/fs"

	"github.com/go-faster/errors"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type schemaSource struct {
	fsys *embed.FS
	dir  string
}

// MigrationRegistry collects per-module embedded schema directories and runs
// them with goose. Version numbers are namespaced by convention: core 1xxx,
// catalog 2xxx, crm 3xxx, so the combined set stays totally ordered.
type MigrationRegistry struct {
	sources []schemaSource
}

func (m *MigrationRegistry) RegisterSchema(fsys *embed.FS, dir string) {
	m.sources = append(m.sources, schemaSource{fsys: fsys, dir: dir})
}

// Run applies all pending migrations from every registered schema source.
func (m *MigrationRegistry) Run(ctx context.Context, dsn string) error {
	merged, err := m.merged()
	if err != nil {
		return err
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return errors.Wrap(err, "failed to open migration connection")
	}
	defer func() { _ = db.Close() }()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, merged)
	if err != nil {
		return errors.Wrap(err, "failed to create migration provider")
	}
	if _, err := provider.Up(ctx); err != nil {
		return errors.Wrap(err, "failed to apply migrations")
	}
	return nil
}

func (m *MigrationRegistry) merged() (fs.FS, error) {
	out := &mergedFS{}
	for _, src := range m.sources {
		sub, err := fs.Sub(src.fsys, src.dir)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid schema dir %q", src.dir)
		}
		out.parts = append(out.parts, sub)
	}
	return out, nil
}

// mergedFS exposes several schema directories as one flat filesystem for the
// migration provider. File names are assumed unique across modules.
type mergedFS struct {
	parts []fs.FS
}

func (m *mergedFS) Open(name string) (fs.File, error) {
	for _, part := range m.parts {
		if f, err := part.Open(name); err == nil {
			return f, nil
		}
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

func (m *mergedFS) ReadDir(name string) ([]fs.DirEntry, error) {
	var entries []fs.DirEntry
	found := false
	for _, part := range m.parts {
		sub, err := fs.ReadDir(part, name)
		if err != nil {
			continue
		}
		found = true
		entries = append(entries, sub...)
	}
	if !found {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrNotExist}
	}
	return entries, nil
}
