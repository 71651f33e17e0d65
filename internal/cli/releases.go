package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/npmregistry/pkg/registry"
)

// releasesCommand creates the releases command.
func (c *CLI) releasesCommand() *cobra.Command {
	var (
		limit int
		pick  bool
	)

	cmd := &cobra.Command{
		Use:   "releases <package>",
		Short: "List the release history of a package",
		Long: `List every published release of a package, merged with the package-wide
fields, in semver order. A version selector in the argument is ignored.

With --pick an interactive list opens; the chosen release is shown as with
'npmreg details'.`,
		Example: `  npmreg releases express --limit 10
  npmreg releases @babel/core --json
  npmreg releases react --pick`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if pick && c.flags.json {
				return fmt.Errorf("--pick and --json cannot be used together")
			}
			client, err := c.newClient(cmd)
			if err != nil {
				return err
			}
			prog := newProgress(loggerFromContext(cmd.Context()))
			rels, err := spin(cmd.Context(), c, "Fetching releases of "+args[0], func(ctx context.Context) (*registry.Releases, error) {
				return client.Packages.Releases(ctx, args[0])
			})
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Fetched %d releases", rels.Len()))

			switch {
			case pick:
				return c.pickRelease(cmd.Context(), rels)
			case c.flags.json:
				return writeJSON(c.Out, rels)
			}
			printReleases(c.Out, rels, limit)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show only the newest N releases")
	cmd.Flags().BoolVar(&pick, "pick", false, "choose a release interactively")

	return cmd
}

// pickRelease runs the interactive release list and prints the choice.
func (c *CLI) pickRelease(ctx context.Context, rels *registry.Releases) error {
	if !isTerminal(c.Out) {
		return fmt.Errorf("--pick needs an interactive terminal")
	}
	if rels.Len() == 0 {
		printInfo(c.Out, "%s has no releases", rels.Name)
		return nil
	}

	final, err := tea.NewProgram(NewReleaseListModel(rels), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("release picker: %w", err)
	}
	m, ok := final.(ReleaseListModel)
	if !ok || m.Selected == nil {
		return nil
	}
	printRelease(c.Out, m.Selected)
	return nil
}
