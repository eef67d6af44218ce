package cli

import (
	"github.com/colin-cli/colin/internal/command"
	"github.com/colin-cli/colin/internal/initcmd"
	"github.com/spf13/cobra"
)

var initForce bool

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Skip the non-empty directory question (deletion is still confirmed)")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Create a project from a template",
	Long: `Create a new project or component in the current directory.

The template list is fetched from the template service; the chosen template is
downloaded from the npm registry into the local cache, rendered into the
working directory, and its install and start commands are run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		argv := make([]any, 0, len(args)+1)
		for _, a := range args {
			argv = append(argv, a)
		}
		argv = append(argv, command.Options{"force": initForce})
		return runLifecycle(cmd, initcmd.Name, argv)
	},
}
