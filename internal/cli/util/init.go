package util

import (
	"errors"
	"os"

	"github.com/ariel-frischer/spec-compile/internal/cli/shared"
	"github.com/ariel-frischer/spec-compile/internal/config"
	clierrors "github.com/ariel-frischer/spec-compile/internal/errors"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write config/framework.yaml with the built-in defaults",
		Long: `Write the built-in framework configuration to config/framework.yaml so the
concepts, synchronizations, security defaults and execution boundaries can be
edited. An existing file is kept unless --force is given.`,
		Example: `  # Create the default config
  spec-compile init

  # Reset an edited config to the defaults
  spec-compile init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			out := shared.NewReporter(cmd)

			path, err := config.WriteDefault(shared.RootDir(cmd), force)
			if errors.Is(err, os.ErrExist) {
				return out.Error(clierrors.ConfigExists(path))
			}
			if err != nil {
				return out.Error(clierrors.FileNotWritable(path, err))
			}
			out.Success("Config written to %s", path)
			return nil
		},
	}
	cmd.GroupID = shared.GroupConfiguration
	cmd.Flags().BoolP("force", "f", false, "Overwrite an existing config file")
	return cmd
}
