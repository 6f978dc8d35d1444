package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cratewalk/cratewalk/pkg/depgraph"
	"github.com/cratewalk/cratewalk/pkg/errors"
)

// newOrderCmd creates the "order" command, which computes the order in which
// a crate's dependencies must load.
func newOrderCmd() *cobra.Command {
	var flags sourceFlags

	cmd := &cobra.Command{
		Use:   "order [crate]",
		Short: "Compute the loading order of a crate's dependencies",
		Long: `Compute the order in which a crate's dependencies load.

Dependencies are emitted before their dependents (reverse topological order).
Crates on a dependency cycle are reported in a trailing note; the traversal
itself always terminates. With --filter, only crates whose name contains the
given substring participate, the start crate included.

The start crate comes from the positional argument, or from a local Cargo.toml
via --manifest. With --edge-list, the whole graph is read from a local file
instead of the registry.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, root, err := buildGraph(cmd, &flags, args)
			if err != nil {
				return err
			}

			order, cycles, err := depgraph.ComputeLoadOrder(g, root, flags.filter)
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

			fmt.Fprintln(out, depgraph.FormatLoadOrder(order))
			if note := depgraph.CycleNote(order, cycles); note != "" {
				fmt.Fprintf(out, "cycles detected at: %s\n", note)
			}

			if flags.output != "" {
				printSuccess("Computed loading order for %s", root)
				printFile(flags.output)
				printStats(g.NodeCount(), g.EdgeCount(), !flags.refresh && !flags.noCache)
			}
			return nil
		},
	}

	addSourceFlags(cmd, &flags)
	return cmd
}
