package parser

import (
	"strings"

	"github.com/vitebski/sqlite-schema-parser/pkg/models"
)

// ResolveAffinity maps a declared column type to its SQLite type affinity.
// It implements the affinity inference rules from the SQLite documentation
// (https://www.sqlite.org/datatype3.html#determination_of_column_affinity):
// case-insensitive substring checks applied in a fixed priority order, so
// "INTEGER CHAR" is INTEGER because the INT rule runs first. Every input
// resolves, unknown type names fall back to NUMERIC and an empty declaration
// means BLOB.
func ResolveAffinity(declaredType string) models.TypeAffinity {
	t := strings.ToUpper(declaredType)

	switch {
	case strings.Contains(t, "INT"):
		return models.Integer
	case strings.Contains(t, "CHAR"), strings.Contains(t, "CLOB"), strings.Contains(t, "TEXT"):
		return models.Text
	case strings.Contains(t, "BLOB"), t == "":
		return models.Blob
	case strings.Contains(t, "REAL"), strings.Contains(t, "FLOA"), strings.Contains(t, "DOUB"):
		return models.Real
	default:
		return models.Numeric
	}
}
