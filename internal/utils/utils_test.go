package utils

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/vitebski/sqlite-schema-parser/pkg/models"
)

func TestSetupLogging(t *testing.T) {
	logger := SetupLogging("debug")
	if logger.Level != logrus.DebugLevel {
		t.Errorf("Expected debug level, got %v", logger.Level)
	}

	// Invalid levels fall back to info
	logger = SetupLogging("not-a-level")
	if logger.Level != logrus.InfoLevel {
		t.Errorf("Expected info level fallback, got %v", logger.Level)
	}

	// Environment variable is used when no level is given
	t.Setenv("SQLITE_LOG_LEVEL", "warning")
	logger = SetupLogging("")
	if logger.Level != logrus.WarnLevel {
		t.Errorf("Expected warn level from environment, got %v", logger.Level)
	}
}

func TestLoadEnvironmentVariables(t *testing.T) {
	logger := SetupLogging("fatal")

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "SQLITE_DATABASE=/tmp/from-env-file.sqlite3\n"
	if err := os.WriteFile(envFile, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}

	t.Setenv("SQLITE_DATABASE", "")
	os.Unsetenv("SQLITE_DATABASE")

	if ok := LoadEnvironmentVariables(envFile, logger); !ok {
		t.Error("Expected LoadEnvironmentVariables to succeed with env file")
	}
	if got := os.Getenv("SQLITE_DATABASE"); got != "/tmp/from-env-file.sqlite3" {
		t.Errorf("Expected SQLITE_DATABASE from env file, got %q", got)
	}
}

func TestLoadEnvironmentVariablesMissingFile(t *testing.T) {
	logger := SetupLogging("fatal")

	t.Setenv("SQLITE_DATABASE", "")
	os.Unsetenv("SQLITE_DATABASE")

	if ok := LoadEnvironmentVariables(filepath.Join(t.TempDir(), ".env"), logger); ok {
		t.Error("Expected false when no env file and no SQLITE_DATABASE")
	}
}

func TestValidateDatabasePath(t *testing.T) {
	logger := SetupLogging("fatal")

	if ValidateDatabasePath("", logger) {
		t.Error("Expected empty path to be rejected")
	}

	dir := t.TempDir()
	if ValidateDatabasePath(dir, logger) {
		t.Error("Expected directory path to be rejected")
	}

	path := filepath.Join(dir, "db.sqlite3")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	if !ValidateDatabasePath(path, logger) {
		t.Error("Expected existing file to be accepted")
	}
}

func TestWriteSchemaJSON(t *testing.T) {
	schema := models.Schema{
		Tables: map[string]models.Table{
			"users": {
				Name: "users",
				Columns: []models.Column{
					{ID: 0, Name: "id", Affinity: models.Integer, IsPrimaryKey: true},
					{ID: 1, Name: "name", Affinity: models.Text, Nullable: true},
				},
			},
			"orders": {
				Name: "orders",
				Columns: []models.Column{
					{ID: 2, Name: "id", Affinity: models.Integer, IsPrimaryKey: true},
					{ID: 3, Name: "user_id", Affinity: models.Integer, Nullable: true},
				},
				ForeignKeys: []models.ForeignKey{
					{ID: 0, ReferencedTable: "users", FromColumns: []string{"user_id"}, ToColumns: []string{"id"}},
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := WriteSchemaJSON(&buf, schema, []string{"users", "orders"}); err != nil {
		t.Fatalf("WriteSchemaJSON returned error: %v", err)
	}

	var doc struct {
		Tables []struct {
			Name    string `json:"name"`
			Columns []struct {
				ID         uint64 `json:"id"`
				Name       string `json:"name"`
				Affinity   string `json:"affinity"`
				Nullable   bool   `json:"nullable"`
				PrimaryKey bool   `json:"primary_key"`
			} `json:"columns"`
			ForeignKeys []struct {
				ID              uint64   `json:"id"`
				ReferencedTable string   `json:"referenced_table"`
				FromColumns     []string `json:"from_columns"`
				ToColumns       []string `json:"to_columns"`
			} `json:"foreign_keys"`
		} `json:"tables"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}

	if len(doc.Tables) != 2 {
		t.Fatalf("Expected 2 tables in output, got %d", len(doc.Tables))
	}
	if doc.Tables[0].Name != "users" || doc.Tables[1].Name != "orders" {
		t.Errorf("Tables out of order: %s, %s", doc.Tables[0].Name, doc.Tables[1].Name)
	}

	users := doc.Tables[0]
	if users.Columns[0].Affinity != "INTEGER" || !users.Columns[0].PrimaryKey {
		t.Errorf("Unexpected users.id column: %+v", users.Columns[0])
	}

	orders := doc.Tables[1]
	if len(orders.ForeignKeys) != 1 {
		t.Fatalf("Expected 1 foreign key on orders, got %d", len(orders.ForeignKeys))
	}
	fk := orders.ForeignKeys[0]
	if fk.ReferencedTable != "users" || fk.FromColumns[0] != "user_id" || fk.ToColumns[0] != "id" {
		t.Errorf("Unexpected foreign key: %+v", fk)
	}
}

func TestWriteSchemaJSONSkipsUnknownTables(t *testing.T) {
	schema := models.Schema{Tables: map[string]models.Table{"users": {Name: "users"}}}

	var buf bytes.Buffer
	if err := WriteSchemaJSON(&buf, schema, []string{"users", "ghost"}); err != nil {
		t.Fatalf("WriteSchemaJSON returned error: %v", err)
	}

	var doc map[string][]map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if len(doc["tables"]) != 1 {
		t.Errorf("Expected 1 table in output, got %d", len(doc["tables"]))
	}
}
