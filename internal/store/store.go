package store

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	libsql "github.com/tursodatabase/libsql-client-go/libsql"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cmh231/symrewrite/internal/util"
)

// ErrNotFound is returned by Load when no entry exists for the given name.
var ErrNotFound = errors.New("store: catalog entry not found")

// ErrDuplicateName is returned by Save when an entry with the given name
// already exists under a different Kind.
var ErrDuplicateName = errors.New("store: catalog entry name already exists")

// Store wraps a catalog database connection.
type Store struct {
	db *gorm.DB
}

// Connect establishes a database connection and migrates the schema,
// selecting between a local SQLite file and a remote libsql/Turso URL
// exactly as db.Connect does: dsn is treated as a URL if it carries an
// http(s):// or libsql:// scheme, and as a filesystem path otherwise.
func Connect(dsn string, authToken string, debug bool) (*Store, error) {
	if !isURL(dsn) {
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create catalog directory: %w", err)
			}
		}
	}

	gormConfig := &gorm.Config{}
	if debug {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}

	var (
		dialector gorm.Dialector
		conn      *sql.DB
	)
	if isURL(dsn) {
		var (
			connector driver.Connector
			err       error
		)
		if authToken != "" {
			connector, err = libsql.NewConnector(dsn, libsql.WithAuthToken(authToken))
		} else {
			connector, err = libsql.NewConnector(dsn)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create libsql connector: %w", err)
		}
		conn = sql.OpenDB(connector)
		dialector = sqlite.New(sqlite.Config{
			DriverName: "libsql",
			Conn:       conn,
			DSN:        dsn,
		})
	} else {
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		if conn != nil {
			conn.Close()
		}
		return nil, fmt.Errorf("failed to connect to catalog: %w", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Exec("PRAGMA foreign_keys = ON")
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("catalog migration failed: %w", err)
	}

	return &Store{db: db}, nil
}

func isURL(dsn string) bool {
	return strings.HasPrefix(dsn, "http://") || strings.HasPrefix(dsn, "https://") || strings.HasPrefix(dsn, "libsql://")
}

// Migrate creates or updates the catalog schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&CatalogEntry{})
}

// Save upserts the named entry: a first save assigns a fresh ID, and a
// later save under the same name and kind overwrites the payload in
// place. Saving an existing name under a different Kind is rejected via
// ErrDuplicateName, since a template and a rule-set are never
// interchangeable under one name.
func (s *Store) Save(name string, kind Kind, payload []byte) error {
	var existing CatalogEntry
	err := s.db.Where("name = ?", name).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		entry := CatalogEntry{
			ID:       uuid.NewString(),
			Name:     name,
			Kind:     string(kind),
			Payload:  datatypes.JSON(payload),
			Checksum: util.SHA1Hex(payload),
		}
		return s.db.Create(&entry).Error
	case err != nil:
		return fmt.Errorf("store: lookup failed: %w", err)
	case existing.Kind != string(kind):
		return ErrDuplicateName
	default:
		existing.Payload = datatypes.JSON(payload)
		existing.Checksum = util.SHA1Hex(payload)
		return s.db.Save(&existing).Error
	}
}

// Load returns the payload saved under name, or ErrNotFound.
func (s *Store) Load(name string) ([]byte, Kind, error) {
	var entry CatalogEntry
	err := s.db.Where("name = ?", name).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("store: lookup failed: %w", err)
	}
	return []byte(entry.Payload), Kind(entry.Kind), nil
}

// List returns the names of every entry of the given kind, in no
// particular order.
func (s *Store) List(kind Kind) ([]string, error) {
	var entries []CatalogEntry
	if err := s.db.Where("kind = ?", string(kind)).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("store: list failed: %w", err)
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names, nil
}
