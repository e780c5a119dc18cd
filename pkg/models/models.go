package models

import "strings"

// TypeAffinity is the storage class SQLite prefers for a column, inferred
// from its declared type text
type TypeAffinity int

const (
	Text TypeAffinity = iota
	Numeric
	Blob
	Real
	Integer
)

// String returns the affinity name as SQLite documents it
func (a TypeAffinity) String() string {
	switch a {
	case Text:
		return "TEXT"
	case Numeric:
		return "NUMERIC"
	case Blob:
		return "BLOB"
	case Real:
		return "REAL"
	case Integer:
		return "INTEGER"
	default:
		return "UNKNOWN"
	}
}

// Column represents a column of a parsed table
type Column struct {
	// ID is unique across the whole schema, assigned in parse order
	// starting at 0, never reset per table
	ID           uint64
	Name         string
	Affinity     TypeAffinity
	Nullable     bool
	IsPrimaryKey bool
}

// ForeignKey represents a foreign key constraint, composite keys included.
// FromColumns[i] references ToColumns[i] on the referenced table.
type ForeignKey struct {
	// ID is the constraint id as reported by the database, scoped to the
	// owning table
	ID              uint64
	ReferencedTable string
	FromColumns     []string
	ToColumns       []string
}

// Table represents a parsed table with its columns and foreign keys
type Table struct {
	Name        string
	Columns     []Column
	ForeignKeys []ForeignKey
}

// Column finds a column by name, ignoring case. Returns nil if the table
// has no such column.
func (t *Table) Column(name string) *Column {
	for i := range t.Columns {
		if strings.EqualFold(t.Columns[i].Name, name) {
			return &t.Columns[i]
		}
	}
	return nil
}

// PrimaryKeyColumns returns the columns that are part of the primary key,
// in table order
func (t *Table) PrimaryKeyColumns() []Column {
	var pk []Column
	for _, c := range t.Columns {
		if c.IsPrimaryKey {
			pk = append(pk, c)
		}
	}
	return pk
}

// Schema is the full parsed schema, keyed by table name
type Schema struct {
	Tables map[string]Table
}

// Table looks up a table by name. Returns nil if the schema has no such
// table.
func (s *Schema) Table(name string) *Table {
	if t, ok := s.Tables[name]; ok {
		return &t
	}
	return nil
}

// TableNames returns all table names in unspecified order
func (s *Schema) TableNames() []string {
	names := make([]string, 0, len(s.Tables))
	for name := range s.Tables {
		names = append(names, name)
	}
	return names
}
