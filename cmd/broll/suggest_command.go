package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSuggestCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <text>",
		Short: "Suggest search queries for a piece of narration text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cctx.newSession()
			if err != nil {
				return err
			}
			defer sess.Close()

			selected := strings.Join(args, " ")
			suggestions, err := sess.ideas.SuggestQueries(cmd.Context(), selected)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(suggestions))
			for i, suggestion := range suggestions {
				rows = append(rows, []string{
					fmt.Sprintf("%d", i+1),
					suggestion.Query,
					suggestion.Reasoning,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"#", "Query", "Reasoning"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft}))
			return nil
		},
	}
}
