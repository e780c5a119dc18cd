package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vitebski/sqlite-schema-parser/internal/analyzer"
	"github.com/vitebski/sqlite-schema-parser/internal/connector"
	"github.com/vitebski/sqlite-schema-parser/internal/parser"
	"github.com/vitebski/sqlite-schema-parser/internal/utils"
)

func main() {
	var (
		database   string
		envFile    string
		logLevel   string
		jsonOutput bool
		outputPath string
	)

	rootCmd := &cobra.Command{
		Use:   "sqlite-schema-parser",
		Short: "A tool to extract a structured schema model from a SQLite database",
		Long: `SQLite Schema Parser

A Go tool that reads a SQLite database file and extracts its schema as a
structured, language-agnostic model: tables, columns with type affinities,
nullability, primary keys and composite foreign keys. The model is printed
as an analysis report or exported as JSON for downstream code generation.`,
		Run: func(cmd *cobra.Command, args []string) {
			// Setup logging
			logger := utils.SetupLogging(logLevel)

			// Load environment variables
			utils.LoadEnvironmentVariables(envFile, logger)

			if database == "" {
				database = os.Getenv("SQLITE_DATABASE")
			}

			if !utils.ValidateDatabasePath(database, logger) {
				os.Exit(1)
			}

			// Open the database
			db := connector.NewSQLiteConnector(database, logger)
			if err := db.Connect(); err != nil {
				logger.Errorf("Failed to open database: %v", err)
				os.Exit(1)
			}
			defer db.Disconnect()

			// Parse the schema
			schemaParser := parser.NewSchemaParser(db, logger)
			schema, err := schemaParser.Parse()
			if err != nil {
				logger.Errorf("Failed to parse schema: %v", err)
				os.Exit(1)
			}

			if len(schema.Tables) == 0 {
				logger.Warning("No tables found in database")
			}

			depAnalyzer := analyzer.NewDependencyAnalyzer(schema, logger)

			if jsonOutput {
				out := os.Stdout
				if outputPath != "" {
					f, err := os.Create(outputPath)
					if err != nil {
						logger.Errorf("Failed to create output file: %v", err)
						os.Exit(1)
					}
					defer f.Close()
					out = f
				}

				order, _ := depAnalyzer.GenerationOrder()
				if err := utils.WriteSchemaJSON(out, schema, order); err != nil {
					logger.Errorf("Failed to write schema JSON: %v", err)
					os.Exit(1)
				}
				return
			}

			utils.PrintSchemaReport(schema, depAnalyzer)
		},
	}

	// Define flags
	rootCmd.Flags().StringVarP(&database, "database", "d", "", "Path to the SQLite database file")
	rootCmd.Flags().StringVarP(&envFile, "env-file", "e", ".env", "Path to .env file")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "", "Log level (debug, info, warn, error)")
	rootCmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Emit the schema as JSON instead of the analysis report")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write JSON output to a file instead of stdout")

	// Execute
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
