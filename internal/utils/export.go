package utils

import (
	"encoding/json"
	"io"

	"github.com/vitebski/sqlite-schema-parser/pkg/models"
)

// JSON document shapes for the schema export. Field names are part of the
// output contract consumed by code generators; the Go model types stay free
// to evolve independently.
type schemaDoc struct {
	Tables []tableDoc `json:"tables"`
}

type tableDoc struct {
	Name        string          `json:"name"`
	Columns     []columnDoc     `json:"columns"`
	ForeignKeys []foreignKeyDoc `json:"foreign_keys"`
}

type columnDoc struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	Affinity   string `json:"affinity"`
	Nullable   bool   `json:"nullable"`
	PrimaryKey bool   `json:"primary_key"`
}

type foreignKeyDoc struct {
	ID              uint64   `json:"id"`
	ReferencedTable string   `json:"referenced_table"`
	FromColumns     []string `json:"from_columns"`
	ToColumns       []string `json:"to_columns"`
}

// WriteSchemaJSON writes the schema as a JSON document, one table per entry
// in the supplied order. Passing the analyzer's generation order keeps the
// output deterministic and generation-friendly.
func WriteSchemaJSON(w io.Writer, schema models.Schema, tableOrder []string) error {
	doc := schemaDoc{Tables: make([]tableDoc, 0, len(tableOrder))}

	for _, name := range tableOrder {
		table, ok := schema.Tables[name]
		if !ok {
			continue
		}

		td := tableDoc{
			Name:        table.Name,
			Columns:     make([]columnDoc, 0, len(table.Columns)),
			ForeignKeys: make([]foreignKeyDoc, 0, len(table.ForeignKeys)),
		}
		for _, col := range table.Columns {
			td.Columns = append(td.Columns, columnDoc{
				ID:         col.ID,
				Name:       col.Name,
				Affinity:   col.Affinity.String(),
				Nullable:   col.Nullable,
				PrimaryKey: col.IsPrimaryKey,
			})
		}
		for _, fk := range table.ForeignKeys {
			td.ForeignKeys = append(td.ForeignKeys, foreignKeyDoc{
				ID:              fk.ID,
				ReferencedTable: fk.ReferencedTable,
				FromColumns:     fk.FromColumns,
				ToColumns:       fk.ToColumns,
			})
		}

		doc.Tables = append(doc.Tables, td)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
