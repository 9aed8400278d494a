package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/juhyuk-code/b-roll-clipping-helper/internal/script"
)

func newSearchCommand(cctx *commandContext) *cobra.Command {
	var sectionNum int
	var query string
	var videoURL string
	var prompt string

	cmd := &cobra.Command{
		Use:   "search <script.md>",
		Short: "Run an ad-hoc footage search against one section",
		Long: `Run an ad-hoc footage search against one section of a parsed script.

With --query, the query is searched and the top result localized. With
--url and --prompt, the prompt is located inside that specific video's
transcript instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if query == "" && videoURL == "" {
				return fmt.Errorf("either --query or --url is required")
			}
			if videoURL != "" && prompt == "" {
				return fmt.Errorf("--url requires --prompt describing the moment to find")
			}

			sess, err := cctx.newSession()
			if err != nil {
				return err
			}
			defer sess.Close()

			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}
			if sectionNum < 1 || sectionNum > len(doc.Sections) {
				return fmt.Errorf("section %d out of range 1..%d", sectionNum, len(doc.Sections))
			}
			sectionID := doc.Sections[sectionNum-1].ID

			ctx := cmd.Context()
			if err := sess.store.LoadDocument(ctx, doc); err != nil {
				return err
			}

			var candidate *script.Candidate
			if videoURL != "" {
				candidate, err = sess.pipeline.FromURL(ctx, sectionID, videoURL, prompt)
			} else {
				candidate, err = sess.pipeline.ManualSearch(ctx, sectionID, query)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if candidate == nil {
				fmt.Fprintln(out, "No results")
				return nil
			}
			printCandidate(out, candidate)
			return nil
		},
	}

	cmd.Flags().IntVarP(&sectionNum, "section", "s", 1, "Section number (1-based)")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Search query")
	cmd.Flags().StringVarP(&videoURL, "url", "u", "", "YouTube URL or video ID to search inside")
	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "Moment to locate when searching inside a video")
	return cmd
}

func printCandidate(out io.Writer, candidate *script.Candidate) {
	fmt.Fprintf(out, "Video:       %s (%s)\n", candidate.MediaTitle, candidate.MediaID)
	fmt.Fprintf(out, "Channel:     %s\n", candidate.Channel)
	fmt.Fprintf(out, "Range:       %s\n", formatClipRange(candidate.Start, candidate.End))
	fmt.Fprintf(out, "Confidence:  %s\n", candidate.Confidence)
	fmt.Fprintf(out, "Description: %s\n", candidate.Description)
	if candidate.Alternative != nil {
		fmt.Fprintf(out, "Alternative: %s %s\n",
			formatClipRange(candidate.Alternative.Start, candidate.Alternative.End),
			candidate.Alternative.Description)
	}
}
