package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/juhyuk-code/b-roll-clipping-helper/internal/discovery"
	"github.com/juhyuk-code/b-roll-clipping-helper/internal/script"
	"github.com/juhyuk-code/b-roll-clipping-helper/internal/textutil"
)

func newCurateCommand(cctx *commandContext) *cobra.Command {
	var outputDir string
	var markAll bool
	var skipExport bool

	cmd := &cobra.Command{
		Use:   "curate <script.md>",
		Short: "Discover B-roll footage for every section of a narration script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cctx.newSession()
			if err != nil {
				return err
			}
			defer sess.Close()

			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if err := sess.store.LoadDocument(ctx, doc); err != nil {
				return err
			}

			dir := outputDir
			if dir == "" {
				dir = sess.cfg.Export.OutputDir
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create export directory: %w", err)
			}
			runLock := flock.New(filepath.Join(dir, ".broll.lock"))
			locked, err := runLock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire run lock: %w", err)
			}
			if !locked {
				return fmt.Errorf("another curate run is already writing to %s", dir)
			}
			defer runLock.Unlock()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Curating %q (%d sections)\n", doc.Title, len(doc.Sections))

			renderer := newProgressRenderer(out, doc)
			sess.pipeline.Tracker().OnChange(renderer.observe)
			if err := sess.pipeline.Run(ctx, doc); err != nil {
				return err
			}
			renderer.finish()

			if markAll {
				if _, err := sess.store.MarkAll(ctx); err != nil {
					return err
				}
			}

			final, err := sess.store.Document(ctx)
			if err != nil {
				return err
			}
			printCurateSummary(out, final, sess.pipeline.Tracker())

			stats, err := sess.store.MarkedStats(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\nMarked for download: %d clips, %s total\n",
				stats.Count, formatSeconds(stats.TotalSeconds))

			if skipExport {
				return nil
			}
			return writeArtifacts(out, dir, final)
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Export directory (defaults to export.output_dir)")
	cmd.Flags().BoolVar(&markAll, "mark-all", true, "Mark every discovered candidate for download")
	cmd.Flags().BoolVar(&skipExport, "no-export", false, "Skip writing export artifacts")
	return cmd
}

func printCurateSummary(out io.Writer, doc *script.Document, tracker *discovery.Tracker) {
	sectionRows := make([][]string, 0, len(doc.Sections))
	var candidateRows [][]string
	for _, section := range doc.Sections {
		status := string(tracker.Stage(section.ID))
		if section.Kind == script.KindSourceClip {
			status = "source clip"
		}
		sectionRows = append(sectionRows, []string{
			fmt.Sprintf("%d", section.Index+1),
			section.Heading,
			status,
			fmt.Sprintf("%d", len(section.Ideas)),
			fmt.Sprintf("%d", len(section.Candidates)),
		})
		for _, candidate := range section.Candidates {
			if candidate.Removed {
				continue
			}
			candidateRows = append(candidateRows, []string{
				fmt.Sprintf("%d", section.Index+1),
				string(candidate.IdeaType),
				textutil.Ellipsize(candidate.SearchQuery, 40),
				textutil.Ellipsize(candidate.MediaTitle, 40),
				candidate.Channel,
				formatClipRange(candidate.Start, candidate.End),
				string(candidate.Confidence),
				yesNo(candidate.MarkedForDownload),
			})
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, renderTable(
		[]string{"#", "Section", "Status", "Ideas", "Clips"},
		sectionRows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight}))

	if len(candidateRows) == 0 {
		fmt.Fprintln(out, "No candidates discovered")
		return
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, renderTable(
		[]string{"#", "Type", "Query", "Video", "Channel", "Range", "Confidence", "Marked"},
		candidateRows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignLeft}))
}
