package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sakif/qa-backend/internal/repository/sqldb"
)

var (
	// Schema flags
	applySchema bool
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print or apply the database schema",
	Long: `Print the DDL for the configured DB_DRIVER.

Examples:
  qa schema            # Print statements
  qa schema --apply    # Create missing tables and indexes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSchema(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)

	schemaCmd.Flags().BoolVar(&applySchema, "apply", false, "Apply the schema instead of printing it")
}

func runSchema(ctx context.Context) error {
	dialect := sqldb.Dialect(cfg.DB.Driver)

	if !applySchema {
		stmts, err := sqldb.Schema(dialect)
		if err != nil {
			return err
		}
		for _, stmt := range stmts {
			fmt.Printf("%s;\n\n", stmt)
		}
		return nil
	}

	// Open bootstraps the schema.
	db, err := sqldb.Open(ctx, dialect, cfg.DB.URL, sqldb.Options{MaxOpenConns: 1})
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Printf("Schema applied to %s database\n", dialect)
	return nil
}
