package parser

import (
	"github.com/sirupsen/logrus"
	"github.com/vitebski/sqlite-schema-parser/internal/connector"
	"github.com/vitebski/sqlite-schema-parser/pkg/models"
)

// SinkFunc receives the finished schema. It is called exactly once, after
// every table has been assembled; a failed parse never reaches the sink.
type SinkFunc func(models.Schema)

// ParseFile opens the database file, parses its schema and pushes the
// result to sink
func ParseFile(path string, logger *logrus.Logger, sink SinkFunc) error {
	schema, err := ParseFileSchema(path, logger)
	if err != nil {
		return err
	}
	sink(schema)
	return nil
}

// ParseFileSchema opens the database file and returns its parsed schema
func ParseFileSchema(path string, logger *logrus.Logger) (models.Schema, error) {
	db := connector.NewSQLiteConnector(path, logger)
	if err := db.Connect(); err != nil {
		return models.Schema{}, err
	}
	defer db.Disconnect()

	return NewSchemaParser(db, logger).Parse()
}
