package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	_ "modernc.org/sqlite"

	"github.com/zjrosen/venom/internal/log"
	"github.com/zjrosen/venom/internal/store"
	"github.com/zjrosen/venom/internal/tracing"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLite stores the document in two tables, one row per task and label,
// ordered by position.
type SQLite struct {
	path   string
	conn   *sql.DB
	tracer trace.Tracer
}

// NewSQLite opens (creating when needed) the database at path and applies
// pending migrations.
func NewSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// Writes are serialized through one connection.
	conn.SetMaxOpenConns(1)

	if err := runMigrations(conn); err != nil {
		_ = conn.Close()
		return nil, err
	}

	log.Debug(log.CatStorage, "sqlite opened", "path", path)
	return &SQLite{
		path:   path,
		conn:   conn,
		tracer: otel.Tracer("venom/storage"),
	}, nil
}

func runMigrations(conn *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}
	driver, err := migratesqlite.WithInstance(conn, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("creating migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// Path returns the database file path.
func (s *SQLite) Path() string { return s.path }

// Close closes the database.
func (s *SQLite) Close() error { return s.conn.Close() }

// Load reads every label and task in position order.
func (s *SQLite) Load(ctx context.Context) (doc store.Document, err error) {
	ctx, span := s.tracer.Start(ctx, tracing.SpanLoad,
		trace.WithAttributes(
			attribute.String(tracing.AttrBackend, BackendSQLite),
			attribute.String(tracing.AttrPath, s.path),
		))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	doc = emptyDocument()

	labelRows, err := s.conn.QueryContext(ctx, `SELECT code, name, color FROM labels ORDER BY position`)
	if err != nil {
		return emptyDocument(), fmt.Errorf("querying labels: %w", err)
	}
	defer func() { _ = labelRows.Close() }()
	for labelRows.Next() {
		var rec store.LabelRecord
		if err := labelRows.Scan(&rec.Code, &rec.Name, &rec.Color); err != nil {
			return emptyDocument(), fmt.Errorf("scanning label: %w", err)
		}
		doc.Labels = append(doc.Labels, rec)
	}
	if err := labelRows.Err(); err != nil {
		return emptyDocument(), fmt.Errorf("reading labels: %w", err)
	}

	taskRows, err := s.conn.QueryContext(ctx,
		`SELECT id, title, priority, notes, due, label, done FROM tasks ORDER BY position`)
	if err != nil {
		return emptyDocument(), fmt.Errorf("querying tasks: %w", err)
	}
	defer func() { _ = taskRows.Close() }()
	for taskRows.Next() {
		rec, err := scanTask(taskRows)
		if err != nil {
			return emptyDocument(), err
		}
		doc.Tasks = append(doc.Tasks, rec)
	}
	if err := taskRows.Err(); err != nil {
		return emptyDocument(), fmt.Errorf("reading tasks: %w", err)
	}

	span.SetAttributes(
		attribute.Int(tracing.AttrTaskCount, len(doc.Tasks)),
		attribute.Int(tracing.AttrLabelCount, len(doc.Labels)),
	)
	return doc, nil
}

func scanTask(scanner interface{ Scan(...any) error }) (store.TaskRecord, error) {
	var (
		rec   store.TaskRecord
		due   sql.NullString
		label sql.NullString
		done  int
	)
	if err := scanner.Scan(&rec.ID, &rec.Title, &rec.Priority, &rec.Notes, &due, &label, &done); err != nil {
		return rec, fmt.Errorf("scanning task: %w", err)
	}
	if due.Valid && due.String != "" {
		// An unparsable due date is dropped like any other bad field.
		if t, err := time.Parse(time.RFC3339Nano, due.String); err == nil {
			rec.Due = &t
		} else {
			log.Warn(log.CatStorage, "dropping bad due date", "id", rec.ID, "due", due.String)
		}
	}
	rec.Label = label.String
	rec.Done = done != 0
	return rec, nil
}

// Save replaces both tables inside one transaction.
func (s *SQLite) Save(ctx context.Context, doc store.Document) (err error) {
	ctx, span := s.tracer.Start(ctx, tracing.SpanSave,
		trace.WithAttributes(
			attribute.String(tracing.AttrBackend, BackendSQLite),
			attribute.String(tracing.AttrPath, s.path),
			attribute.Int(tracing.AttrTaskCount, len(doc.Tasks)),
			attribute.Int(tracing.AttrLabelCount, len(doc.Labels)),
		))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"tasks", "labels"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for i, l := range doc.Labels {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO labels (position, code, name, color) VALUES (?, ?, ?, ?)`,
			i, l.Code, l.Name, l.Color,
		); err != nil {
			return fmt.Errorf("inserting label %q: %w", l.Code, err)
		}
	}

	for i, t := range doc.Tasks {
		var due, label sql.NullString
		if t.Due != nil {
			due = sql.NullString{String: t.Due.Format(time.RFC3339Nano), Valid: true}
		}
		if t.Label != "" {
			label = sql.NullString{String: t.Label, Valid: true}
		}
		done := 0
		if t.Done {
			done = 1
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO tasks (position, id, title, priority, notes, due, label, done)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			i, t.ID, t.Title, t.Priority, t.Notes, due, label, done,
		); err != nil {
			return fmt.Errorf("inserting task %q: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	log.Debug(log.CatStorage, "saved", "path", s.path, "tasks", len(doc.Tasks), "labels", len(doc.Labels))
	return nil
}
