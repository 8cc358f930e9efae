package main

import (
	"fmt"
	"strings"

	"github.com/MrJohz/figtree"
	"github.com/MrJohz/figtree/figparser"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var checkCmd = &cobra.Command{
	Use:   "check <file.ft>...",
	Short: "Check that figtree files parse",
	Long:  "Parse each file and report either its top-level node count or the first syntax error with its position.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	verbose := viper.GetBool("verbose")
	logger := debugLogger(cmd)

	failed := 0
	for _, path := range args {
		doc, err := figtree.ParseFile(path, figparser.WithLogger(logger))
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", err)
			failed++
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d nodes)\n", path, doc.NodeCount())
		if verbose {
			printOutline(cmd, doc)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to parse", failed, len(args))
	}
	return nil
}

// printOutline lists every node with its attribute count, indented by depth.
func printOutline(cmd *cobra.Command, doc *figtree.Document) {
	var walk func(name string, n *figtree.Node, depth int)
	walk = func(name string, n *figtree.Node, depth int) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s%s (%d attrs)\n", strings.Repeat("  ", depth+1), name, n.AttrCount())
		for _, sub := range n.SubnodeNames() {
			walk(sub, n.Node(sub), depth+1)
		}
	}
	for _, name := range doc.Names() {
		walk(name, doc.Node(name), 0)
	}
}
