package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/npmregistry/pkg/registry"
)

// mirrorsCommand creates the mirrors command.
func (c *CLI) mirrorsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mirrors",
		Short: "List the known registry mirrors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.newClient(cmd)
			if err != nil {
				return err
			}
			if c.flags.json {
				return writeJSON(c.Out, struct {
					Default string            `json:"default"`
					Active  string            `json:"active"`
					Mirrors map[string]string `json:"mirrors"`
				}{registry.DefaultMirror, client.API(), registry.Mirrors()})
			}
			printMirrors(c.Out, client.API())
			return nil
		},
	}
}
