package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/juhyuk-code/b-roll-clipping-helper/internal/textutil"
)

func newParseCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "parse <script.md>",
		Short:       "Parse a narration script and print its sections",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(doc.Sections))
			for _, section := range doc.Sections {
				rows = append(rows, []string{
					fmt.Sprintf("%d", section.Index+1),
					section.Heading,
					string(section.Kind),
					fmt.Sprintf("%d", len(section.Ideas)),
					textutil.Ellipsize(section.Text, 60),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Title: %s\n\n", doc.Title)
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Heading", "Kind", "Ideas", "Text"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft}))
			return nil
		},
	}
}
