package main

import (
	"fmt"

	"github.com/MrJohz/figtree"
	"github.com/MrJohz/figtree/figparser"
	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events <file.ft>",
	Short: "Print the parse event stream of a figtree file",
	Long:  "Parse a file and print every structural event the parser yields, one per line, with its source position.",
	Args:  cobra.ExactArgs(1),
	RunE:  runEvents,
}

func init() {
	rootCmd.AddCommand(eventsCmd)
}

func runEvents(cmd *cobra.Command, args []string) error {
	depth := 0
	listener := func(ev figparser.Event) {
		switch ev.Kind {
		case figparser.EventNodeEnd, figparser.EventListEnd, figparser.EventDictEnd:
			depth--
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-8s %*s%s\n", ev.Pos, depth*2, "", ev)
		switch ev.Kind {
		case figparser.EventNodeStart, figparser.EventListStart, figparser.EventDictStart:
			depth++
		}
	}

	_, err := figtree.ParseFile(args[0],
		figparser.WithListener(listener),
		figparser.WithLogger(debugLogger(cmd)))
	return err
}
