package cli

import (
	"github.com/spf13/cobra"
)

// RootCmd returns the zetagen command with all subcommands attached.
func RootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:     "zetagen",
		Short:   "zetagen - Kotlin scaffolding from database tables",
		Version: version,
		Long: `zetagen reads table metadata from MySQL, PostgreSQL or SQLite and generates
the controller, service, mapper, entity, DTO and query parameter sources of a
zetaframework project.`,
		SilenceErrors: true,
	}
	root.AddCommand(GenerateCmd())
	root.AddCommand(WatchCmd())
	root.AddCommand(InitCmd())
	return root
}
