package connector

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// ColumnInfo is one row of PRAGMA table_info for a table
type ColumnInfo struct {
	Ordinal        int
	Name           string
	DeclaredType   string
	NotNull        bool
	PrimaryKeyRank int
}

// ForeignKeyInfo is one row of PRAGMA foreign_key_list for a table. A
// composite foreign key is reported as several rows sharing an ID, one per
// column pair, ordered by Seq.
type ForeignKeyInfo struct {
	ID              uint64
	Seq             int
	ReferencedTable string
	FromColumn      string
	ToColumn        string
}

// SQLiteConnector opens a SQLite database file read-only and runs the
// schema introspection queries
type SQLiteConnector struct {
	Path   string
	DB     *sql.DB
	Logger *logrus.Logger
}

// NewSQLiteConnector creates a new connector for the given database file
func NewSQLiteConnector(path string, logger *logrus.Logger) *SQLiteConnector {
	if path == "" {
		path = os.Getenv("SQLITE_DATABASE")
	}

	return &SQLiteConnector{
		Path:   path,
		Logger: logger,
	}
}

// Connect opens the database file and verifies it is reachable
func (sc *SQLiteConnector) Connect() error {
	if sc.Path == "" {
		return fmt.Errorf("database path must be provided either as an argument or as SQLITE_DATABASE environment variable")
	}

	if _, err := os.Stat(sc.Path); err != nil {
		sc.Logger.Errorf("Database file is not accessible: %v", err)
		return fmt.Errorf("database file %s is not accessible: %w", sc.Path, err)
	}

	db, err := sql.Open("sqlite", sc.Path+"?mode=ro")
	if err != nil {
		sc.Logger.Errorf("Error opening SQLite database: %v", err)
		return err
	}

	if err := db.Ping(); err != nil {
		sc.Logger.Errorf("Error pinging SQLite database: %v", err)
		db.Close()
		return err
	}

	sc.DB = db
	sc.Logger.Infof("Opened SQLite database: %s", sc.Path)
	return nil
}

// Disconnect closes the database
func (sc *SQLiteConnector) Disconnect() {
	if sc.DB != nil {
		if err := sc.DB.Close(); err != nil {
			sc.Logger.Errorf("Error closing database: %v", err)
		} else {
			sc.Logger.Info("SQLite database closed")
		}
	}
}

// ListTables returns the user table names in sqlite_master declaration
// order. Internal sqlite_* bookkeeping tables are skipped.
func (sc *SQLiteConnector) ListTables() ([]string, error) {
	query := `
		SELECT name
		FROM sqlite_master
		WHERE type = 'table'
		AND name NOT LIKE 'sqlite\_%' ESCAPE '\'
	`
	rows, err := sc.DB.Query(query)
	if err != nil {
		sc.Logger.Errorf("Error listing tables: %v", err)
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			sc.Logger.Errorf("Error scanning table name: %v", err)
			return nil, err
		}
		tables = append(tables, name)
	}

	if err := rows.Err(); err != nil {
		sc.Logger.Errorf("Error iterating tables: %v", err)
		return nil, err
	}

	return tables, nil
}

// TableInfo returns the column descriptors of a table in ordinal order
func (sc *SQLiteConnector) TableInfo(table string) ([]ColumnInfo, error) {
	query := `SELECT cid, name, type, "notnull", pk FROM pragma_table_info(?)`
	rows, err := sc.DB.Query(query, table)
	if err != nil {
		sc.Logger.Errorf("Error reading table_info for %s: %v", table, err)
		return nil, err
	}
	defer rows.Close()

	var columns []ColumnInfo
	for rows.Next() {
		var ci ColumnInfo
		var notNull int
		if err := rows.Scan(&ci.Ordinal, &ci.Name, &ci.DeclaredType, &notNull, &ci.PrimaryKeyRank); err != nil {
			sc.Logger.Errorf("Error scanning table_info row for %s: %v", table, err)
			return nil, err
		}
		ci.NotNull = notNull != 0
		columns = append(columns, ci)
	}

	if err := rows.Err(); err != nil {
		sc.Logger.Errorf("Error iterating table_info rows for %s: %v", table, err)
		return nil, err
	}

	return columns, nil
}

// ForeignKeyList returns the foreign key rows of a table as reported by
// the database
func (sc *SQLiteConnector) ForeignKeyList(table string) ([]ForeignKeyInfo, error) {
	query := `SELECT id, seq, "table", "from", "to" FROM pragma_foreign_key_list(?)`
	rows, err := sc.DB.Query(query, table)
	if err != nil {
		sc.Logger.Errorf("Error reading foreign_key_list for %s: %v", table, err)
		return nil, err
	}
	defer rows.Close()

	var fks []ForeignKeyInfo
	for rows.Next() {
		var fk ForeignKeyInfo
		if err := rows.Scan(&fk.ID, &fk.Seq, &fk.ReferencedTable, &fk.FromColumn, &fk.ToColumn); err != nil {
			sc.Logger.Errorf("Error scanning foreign_key_list row for %s: %v", table, err)
			return nil, err
		}
		fks = append(fks, fk)
	}

	if err := rows.Err(); err != nil {
		sc.Logger.Errorf("Error iterating foreign_key_list rows for %s: %v", table, err)
		return nil, err
	}

	return fks, nil
}
