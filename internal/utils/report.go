package utils

import (
	"fmt"
	"strings"

	"github.com/vitebski/sqlite-schema-parser/internal/analyzer"
	"github.com/vitebski/sqlite-schema-parser/pkg/models"
)

// PrintSchemaReport prints a plain-text analysis of the parsed schema
func PrintSchemaReport(schema models.Schema, depAnalyzer *analyzer.DependencyAnalyzer) {
	orderedTables, circularTables := depAnalyzer.GenerationOrder()

	totalColumns := 0
	totalForeignKeys := 0
	compositeForeignKeys := 0
	tablesWithForeignKeys := 0

	for _, table := range schema.Tables {
		totalColumns += len(table.Columns)
		totalForeignKeys += len(table.ForeignKeys)
		if len(table.ForeignKeys) > 0 {
			tablesWithForeignKeys++
		}
		for _, fk := range table.ForeignKeys {
			if len(fk.FromColumns) > 1 {
				compositeForeignKeys++
			}
		}
	}

	printHeader("SQLITE SCHEMA ANALYSIS REPORT")

	fmt.Println("\n1. BASIC STATISTICS")
	fmt.Printf("   Total tables: %d\n", len(schema.Tables))
	fmt.Printf("   Total columns: %d\n", totalColumns)
	fmt.Printf("   Tables with foreign keys: %d\n", tablesWithForeignKeys)
	fmt.Printf("   Foreign keys: %d (composite: %d)\n", totalForeignKeys, compositeForeignKeys)
	fmt.Printf("   Tables in circular references: %d\n", len(circularTables))

	fmt.Println("\n2. TABLES")
	for _, name := range orderedTables {
		table := schema.Tables[name]
		fmt.Printf("   %s (%d columns)\n", name, len(table.Columns))
		for _, col := range table.Columns {
			var attrs []string
			if col.IsPrimaryKey {
				attrs = append(attrs, "PK")
			}
			if !col.Nullable {
				attrs = append(attrs, "NOT NULL")
			}
			suffix := ""
			if len(attrs) > 0 {
				suffix = " " + strings.Join(attrs, " ")
			}
			fmt.Printf("      [%d] %s %s%s\n", col.ID, col.Name, col.Affinity, suffix)
		}
		for _, fk := range table.ForeignKeys {
			fmt.Printf("      FK(%s) -> %s(%s)\n",
				strings.Join(fk.FromColumns, ", "),
				fk.ReferencedTable,
				strings.Join(fk.ToColumns, ", "))
		}
	}

	if len(circularTables) > 0 {
		fmt.Println("\n3. CIRCULAR REFERENCES")
		var circularList []string
		for _, name := range depAnalyzer.Tables {
			if circularTables[name] {
				circularList = append(circularList, name)
			}
		}
		fmt.Printf("   Tables involved: %s\n", strings.Join(circularList, ", "))
	}

	fmt.Println("\n4. RECOMMENDED GENERATION ORDER")
	for i, name := range orderedTables {
		marker := ""
		if circularTables[name] {
			marker = " (circular)"
		}
		fmt.Printf("   %3d. %s%s\n", i+1, name, marker)
	}

	fmt.Println("\n" + strings.Repeat("=", reportWidth))
}
