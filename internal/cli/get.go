package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/npmregistry/pkg/registry"
)

// getCommand creates the get command.
func (c *CLI) getCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <package[@version]>",
		Short: "Show the base record of a package or one of its releases",
		Long: `Show the base record of a package: its dist-tags and published versions.

With a version selector (pkg@1.2.3, pkg/1.2.3, pkg@next, pkg@^1) only the
selected release is shown. Licenses are not part of the base record; use
'npmreg details' for them.`,
		Example: `  npmreg get react
  npmreg get @types/node@^20
  npmreg get eventemitter3/4.0.0 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.newClient(cmd)
			if err != nil {
				return err
			}
			prog := newProgress(loggerFromContext(cmd.Context()))
			pkg, err := spin(cmd.Context(), c, "Fetching "+args[0], func(ctx context.Context) (*registry.Package, error) {
				return client.Packages.Get(ctx, args[0])
			})
			if err != nil {
				return err
			}
			prog.done("Fetched " + pkg.Name)

			if c.flags.json {
				return writeJSON(c.Out, pkg)
			}
			printPackage(c.Out, pkg)
			return nil
		},
	}
}
