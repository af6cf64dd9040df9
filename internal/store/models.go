// Package store persists named lattice templates and rule definitions so
// a CLI invocation or long-lived process can reuse them across runs.
// Property, Expression, Pattern, and Rule values themselves are never
// persisted directly — only the JSON they were built from — preserving
// the core algebra's purity and immutability.
package store

import (
	"time"

	"gorm.io/datatypes"
)

// Kind distinguishes what a CatalogEntry's Payload holds.
type Kind string

const (
	// KindTemplate entries hold a lattice template's JSON (an
	// internal/wire.TemplateNode tree).
	KindTemplate Kind = "template"
	// KindRuleSet entries hold a serialized list of rule definitions.
	KindRuleSet Kind = "ruleset"
)

// CatalogEntry is a durable record pairing a caller-chosen name with a
// serialized lattice template or rule-set definition, modeled on
// models.Stage's conventions (string primary key, JSON payload column,
// created-time bookkeeping).
type CatalogEntry struct {
	ID   string `gorm:"primaryKey;type:varchar(36)"`
	Name string `gorm:"type:varchar(255);uniqueIndex;not null"`
	Kind string `gorm:"type:varchar(20);not null"`

	Payload datatypes.JSON `gorm:"type:jsonb;not null"`

	Checksum  string    `gorm:"type:varchar(64)"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (CatalogEntry) TableName() string { return "catalog_entries" }
