package parser

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/vitebski/sqlite-schema-parser/internal/connector"
	"github.com/vitebski/sqlite-schema-parser/pkg/models"
)

// ErrDataIntegrity marks schema data the database should never report:
// duplicate table names, foreign key groups that disagree on the referenced
// table, or an empty column list for a reported foreign key. It is distinct
// from source access errors, which are passed through unwrapped.
var ErrDataIntegrity = errors.New("schema data integrity violation")

// Source supplies raw schema introspection results. The parser never runs
// SQL itself; *connector.SQLiteConnector is the production implementation.
type Source interface {
	ListTables() ([]string, error)
	TableInfo(table string) ([]connector.ColumnInfo, error)
	ForeignKeyList(table string) ([]connector.ForeignKeyInfo, error)
}

// SchemaParser assembles raw introspection rows into a schema model
type SchemaParser struct {
	Source Source
	Logger *logrus.Logger

	// nextColumnID is the schema-wide column id counter. It advances per
	// column in table processing order and is never reset between tables.
	nextColumnID uint64
}

// NewSchemaParser creates a new schema parser on top of a source
func NewSchemaParser(source Source, logger *logrus.Logger) *SchemaParser {
	return &SchemaParser{
		Source: source,
		Logger: logger,
	}
}

// Parse reads the full table list from the source and assembles the schema
// model in one synchronous pass. Tables are processed in the order the
// source lists them. Any error aborts the parse; partial results are
// discarded.
func (sp *SchemaParser) Parse() (models.Schema, error) {
	sp.nextColumnID = 0

	tableNames, err := sp.Source.ListTables()
	if err != nil {
		return models.Schema{}, err
	}

	tables := make(map[string]models.Table, len(tableNames))
	for _, name := range tableNames {
		if _, exists := tables[name]; exists {
			sp.Logger.Errorf("Table %s reported more than once", name)
			return models.Schema{}, fmt.Errorf("duplicate table name %q: %w", name, ErrDataIntegrity)
		}

		rawColumns, err := sp.Source.TableInfo(name)
		if err != nil {
			return models.Schema{}, err
		}

		rawForeignKeys, err := sp.Source.ForeignKeyList(name)
		if err != nil {
			return models.Schema{}, err
		}

		foreignKeys, err := assembleForeignKeys(name, rawForeignKeys)
		if err != nil {
			return models.Schema{}, err
		}

		tables[name] = models.Table{
			Name:        name,
			Columns:     sp.assembleColumns(rawColumns),
			ForeignKeys: foreignKeys,
		}

		sp.Logger.Debugf("Parsed table %s: %d columns, %d foreign keys",
			name, len(tables[name].Columns), len(foreignKeys))
	}

	sp.Logger.Infof("Parsed schema: %d tables, %d columns", len(tables), sp.nextColumnID)
	return models.Schema{Tables: tables}, nil
}

// assembleColumns converts raw table_info rows into columns, assigning each
// one the next schema-wide id. Rows are kept in the ordinal order the source
// reported.
func (sp *SchemaParser) assembleColumns(raw []connector.ColumnInfo) []models.Column {
	columns := make([]models.Column, 0, len(raw))
	for _, ci := range raw {
		columns = append(columns, models.Column{
			ID:           sp.nextColumnID,
			Name:         ci.Name,
			Affinity:     ResolveAffinity(ci.DeclaredType),
			Nullable:     !ci.NotNull,
			IsPrimaryKey: ci.PrimaryKeyRank != 0,
		})
		sp.nextColumnID++
	}
	return columns
}

// assembleForeignKeys groups flat foreign_key_list rows into one ForeignKey
// per constraint id. Groups are emitted in the order their id is first seen
// and the column pairs within a group are ordered by seq; the source is not
// trusted to pre-sort them.
func assembleForeignKeys(table string, raw []connector.ForeignKeyInfo) ([]models.ForeignKey, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var order []uint64
	groups := make(map[uint64][]connector.ForeignKeyInfo)
	for _, row := range raw {
		if _, seen := groups[row.ID]; !seen {
			order = append(order, row.ID)
		}
		groups[row.ID] = append(groups[row.ID], row)
	}

	foreignKeys := make([]models.ForeignKey, 0, len(order))
	for _, id := range order {
		group := groups[id]
		sort.Slice(group, func(i, j int) bool { return group[i].Seq < group[j].Seq })

		fk := models.ForeignKey{
			ID:              id,
			ReferencedTable: group[0].ReferencedTable,
			FromColumns:     make([]string, 0, len(group)),
			ToColumns:       make([]string, 0, len(group)),
		}
		for _, row := range group {
			if row.ReferencedTable != fk.ReferencedTable {
				return nil, fmt.Errorf(
					"foreign key %d of table %q references both %q and %q: %w",
					id, table, fk.ReferencedTable, row.ReferencedTable, ErrDataIntegrity)
			}
			fk.FromColumns = append(fk.FromColumns, row.FromColumn)
			fk.ToColumns = append(fk.ToColumns, row.ToColumn)
		}

		if len(fk.FromColumns) == 0 {
			return nil, fmt.Errorf("foreign key %d of table %q has no columns: %w",
				id, table, ErrDataIntegrity)
		}

		foreignKeys = append(foreignKeys, fk)
	}

	return foreignKeys, nil
}
