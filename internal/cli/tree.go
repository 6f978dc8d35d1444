package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cratewalk/cratewalk/pkg/depgraph"
	"github.com/cratewalk/cratewalk/pkg/errors"
)

// newTreeCmd creates the "tree" command, which renders a crate's dependency
// graph as a depth-bounded ASCII tree.
func newTreeCmd() *cobra.Command {
	var flags sourceFlags

	cmd := &cobra.Command{
		Use:   "tree [crate]",
		Short: "Render the dependency tree of a crate",
		Long: `Render the dependency graph of a crate as an ASCII tree.

Dependencies are fetched transitively from crates.io up to --max-depth levels.
Crates that depend on one of their own ancestors are marked "(cyclic)" and not
expanded further. With --filter, only crates whose name contains the given
substring are shown (the root is always shown).

The root crate comes from the positional argument, or from a local Cargo.toml
via --manifest. With --edge-list, the whole graph is read from a local file
instead of the registry.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, root, err := buildGraph(cmd, &flags, args)
			if err != nil {
				return err
			}

			lines, err := depgraph.RenderTree(g, root, flags.maxDepth, flags.filter)
			if err != nil {
				if errors.GetCode(err) == errors.ErrCodeRootNotFound {
					printError("crate %q not found in graph", root)
				}
				return err
			}

			out, err := openOutput(flags.output)
			if err != nil {
				return err
			}
			defer out.Close()

			fmt.Fprintln(out, strings.Join(lines, "\n"))

			if flags.output != "" {
				printSuccess("Rendered dependency tree for %s", root)
				printFile(flags.output)
				printStats(g.NodeCount(), g.EdgeCount(), !flags.refresh && !flags.noCache)
			}
			return nil
		},
	}

	addSourceFlags(cmd, &flags)
	return cmd
}
