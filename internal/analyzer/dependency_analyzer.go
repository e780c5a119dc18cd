package analyzer

import (
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/vitebski/sqlite-schema-parser/pkg/models"
	"github.com/yourbasic/graph"
)

// DependencyAnalyzer inspects the foreign key references of a parsed schema
// and derives a table ordering that code generators can emit without
// forward references
type DependencyAnalyzer struct {
	Schema          models.Schema
	Tables          []string
	DependencyGraph *graph.Mutable
	TableIndexMap   map[string]int
	IndexTableMap   map[int]string
	Logger          *logrus.Logger
}

// NewDependencyAnalyzer builds the reference graph of a parsed schema.
// Edges run from a referenced table to its referencing tables; self
// references are ignored for ordering purposes.
func NewDependencyAnalyzer(schema models.Schema, logger *logrus.Logger) *DependencyAnalyzer {
	// The schema map has no iteration order, so pin one for determinism.
	tables := schema.TableNames()
	sort.Strings(tables)

	da := &DependencyAnalyzer{
		Schema:          schema,
		Tables:          tables,
		DependencyGraph: graph.New(len(tables)),
		TableIndexMap:   make(map[string]int, len(tables)),
		IndexTableMap:   make(map[int]string, len(tables)),
		Logger:          logger,
	}

	for i, table := range tables {
		da.TableIndexMap[table] = i
		da.IndexTableMap[i] = table
	}

	for _, table := range tables {
		for _, fk := range schema.Tables[table].ForeignKeys {
			if fk.ReferencedTable == table {
				continue
			}
			refIdx, ok := da.TableIndexMap[fk.ReferencedTable]
			if !ok {
				logger.Warningf("Table %s references unknown table %s", table, fk.ReferencedTable)
				continue
			}
			da.DependencyGraph.Add(refIdx, da.TableIndexMap[table])
		}
	}

	return da
}

// CircularTables returns the tables involved in foreign key reference
// cycles, detected as strongly connected components of the reference graph
func (da *DependencyAnalyzer) CircularTables() map[string]bool {
	circular := make(map[string]bool)

	for _, component := range graph.StrongComponents(da.DependencyGraph) {
		if len(component) < 2 {
			continue
		}
		for _, v := range component {
			circular[da.IndexTableMap[v]] = true
		}
	}

	if len(circular) > 0 {
		da.Logger.Debugf("Detected %d tables in circular references", len(circular))
	}

	return circular
}

// GenerationOrder returns the tables ordered so that every non-circular
// foreign key points at an earlier table, plus the set of tables whose
// cycles make such an ordering impossible. Cycle members are appended at
// the end in name order.
func (da *DependencyAnalyzer) GenerationOrder() ([]string, map[string]bool) {
	circular := da.CircularTables()

	placed := make(map[string]bool, len(da.Tables))
	order := make([]string, 0, len(da.Tables))

	for len(order) < len(da.Tables)-len(circular) {
		progress := false

		for _, table := range da.Tables {
			if placed[table] || circular[table] {
				continue
			}

			ready := true
			for _, fk := range da.Schema.Tables[table].ForeignKeys {
				ref := fk.ReferencedTable
				if ref == table || circular[ref] || placed[ref] {
					continue
				}
				if _, known := da.Schema.Tables[ref]; !known {
					continue
				}
				ready = false
				break
			}

			if ready {
				order = append(order, table)
				placed[table] = true
				progress = true
			}
		}

		if !progress {
			break
		}
	}

	// Anything left is either in a cycle or blocked by one. da.Tables is
	// sorted, so the tail stays in name order.
	for _, table := range da.Tables {
		if !placed[table] {
			order = append(order, table)
		}
	}

	return order, circular
}
