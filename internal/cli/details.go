package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/npmregistry/pkg/registry"
)

// detailsCommand creates the details command.
func (c *CLI) detailsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "details <package[@version]>",
		Short: "Show the merged record of a release, including licenses",
		Long: `Show one release merged with the package-wide fields of the full
document: licenses, maintainers, starring users, creation and publish dates.

Without a version selector the release tagged latest is shown.`,
		Example: `  npmreg details eventemitter3
  npmreg details lodash@4.17.21 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.newClient(cmd)
			if err != nil {
				return err
			}
			prog := newProgress(loggerFromContext(cmd.Context()))
			rel, err := spin(cmd.Context(), c, "Fetching "+args[0], func(ctx context.Context) (*registry.Release, error) {
				return client.Packages.Details(ctx, args[0])
			})
			if err != nil {
				return err
			}
			prog.done("Fetched " + rel.Name + "@" + rel.Version)

			if c.flags.json {
				return writeJSON(c.Out, rel)
			}
			printRelease(c.Out, rel)
			return nil
		},
	}
}
