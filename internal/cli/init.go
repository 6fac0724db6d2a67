package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zetaframework/zeta-generator/compiler/gen"
	"github.com/zetaframework/zeta-generator/schema/kind"
)

// SampleConfig returns the configuration written by the init command.
func SampleConfig() *gen.Config {
	cfg := gen.Build("zeta-kotlin", "system", "", "sys_", []string{"sys_user"})
	cfg.OutputDir = "./codeGen"
	cfg.PackageName = "com.zeta"
	cfg.SuperEntity = kind.Entity
	cfg.OpenDir = false
	cfg.DB = gen.Database{
		Dialect:  "mysql",
		URL:      "jdbc:mysql://127.0.0.1:3306/zeta_kotlin?useSSL=false",
		Username: "root",
		Password: "${ZETAGEN_DB_PASSWORD}",
	}
	return cfg
}

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a sample config file",
		Long:  `Init writes a sample config file, ` + DefaultConfigFile + ` unless a path is given.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := DefaultConfigFile
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", path)
			}
			if err := gen.SaveConfig(path, SampleConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Config written to %s\n", path)
			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprintln(cmd.OutOrStdout(), "Next steps:")
			fmt.Fprintln(cmd.OutOrStdout(), "  export ZETAGEN_DB_PASSWORD=...")
			fmt.Fprintf(cmd.OutOrStdout(), "  zetagen generate -c %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}
