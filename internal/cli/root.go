// Package cli implements the stagebook-migrate command line.
package cli

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iliyamo/stagebook/internal/config"
	"github.com/iliyamo/stagebook/internal/database"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Driver     string // overrides DB_DRIVER
	SQLitePath string // overrides SQLITE_PATH
}

// NewRootCommand creates the root command of the migration tool.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "stagebook-migrate",
		Short: "Apply and revert stagebook schema migrations",
		Long: `Apply and revert the schema migrations embedded in stagebook.

The database is read from the DB_* environment variables (and .env);
--driver and --sqlite-path override them.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.Driver {
			case "", database.MySQL, database.SQLite:
				return nil
			default:
				return fmt.Errorf("invalid driver %q: must be mysql or sqlite3", opts.Driver)
			}
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Driver, "driver", "", "database driver (mysql|sqlite3), defaults to DB_DRIVER")
	cmd.PersistentFlags().StringVar(&opts.SQLitePath, "sqlite-path", "", "sqlite3 database file, defaults to SQLITE_PATH")

	cmd.AddCommand(NewUpCommand(opts))
	cmd.AddCommand(NewDownCommand(opts))
	cmd.AddCommand(NewStatusCommand(opts))

	return cmd
}

// open connects to the database the flags and environment select, and
// returns it with its dialect.
func (o *RootOptions) open() (*sql.DB, string, error) {
	var dbOpts database.Options
	if o.Driver == database.SQLite {
		// a sqlite file needs nothing else from the environment
		dbOpts = database.Options{Driver: database.SQLite, Path: o.SQLitePath}
		if dbOpts.Path == "" {
			dbOpts.Path = "stagebook.db"
		}
	} else {
		loaded, err := config.LoadDatabase()
		if err != nil {
			return nil, "", err
		}
		dbOpts = loaded
		if o.Driver != "" && o.Driver != dbOpts.Driver {
			return nil, "", fmt.Errorf("--driver %s conflicts with DB_DRIVER %s", o.Driver, dbOpts.Driver)
		}
		if o.SQLitePath != "" && dbOpts.Driver == database.SQLite {
			dbOpts.Path = o.SQLitePath
		}
	}
	db, err := database.Open(dbOpts)
	if err != nil {
		return nil, "", err
	}
	return db, dbOpts.Driver, nil
}
