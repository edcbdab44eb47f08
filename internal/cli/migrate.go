package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/iliyamo/stagebook/internal/migrate"
)

// NewUpCommand creates the up command.
func NewUpCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, dialect, err := rootOpts.open()
			if err != nil {
				return err
			}
			defer db.Close()

			done, err := migrate.Up(cmd.Context(), db, dialect)
			printMigrations(cmd.OutOrStdout(), "applied", done)
			return err
		},
	}
}

// NewDownCommand creates the down command.
func NewDownCommand(rootOpts *RootOptions) *cobra.Command {
	var steps int
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Revert the newest applied migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, dialect, err := rootOpts.open()
			if err != nil {
				return err
			}
			defer db.Close()

			done, err := migrate.Down(cmd.Context(), db, dialect, steps)
			printMigrations(cmd.OutOrStdout(), "reverted", done)
			return err
		},
	}
	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "number of migrations to revert")
	return cmd
}

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "List migrations and whether each is applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, dialect, err := rootOpts.open()
			if err != nil {
				return err
			}
			defer db.Close()

			states, err := migrate.Status(cmd.Context(), db, dialect)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "VERSION\tNAME\tAPPLIED AT")
			for _, s := range states {
				at := "pending"
				if s.Applied {
					at = s.AppliedAt.UTC().Format("2006-01-02 15:04:05")
				}
				fmt.Fprintf(w, "%04d\t%s\t%s\n", s.Version, s.Name, at)
			}
			return w.Flush()
		},
	}
}

func printMigrations(w io.Writer, verb string, ms []migrate.Migration) {
	if len(ms) == 0 {
		fmt.Fprintf(w, "nothing %s\n", verb)
		return
	}
	for _, m := range ms {
		fmt.Fprintf(w, "%s %04d_%s\n", verb, m.Version, m.Name)
	}
}
