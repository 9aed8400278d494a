package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/juhyuk-code/b-roll-clipping-helper/internal/export"
	"github.com/juhyuk-code/b-roll-clipping-helper/internal/script"
)

const (
	scriptArtifact   = "broll_download.sh"
	manifestArtifact = "broll_manifest.json"
	stateArtifact    = "broll_state.json"
)

func newExportCommand(cctx *commandContext) *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "export <state.json>",
		Short: "Regenerate export artifacts from a saved curation state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}

			doc, err := export.ReadState(args[0])
			if err != nil {
				return err
			}

			dir := outputDir
			if dir == "" {
				dir = cfg.Export.OutputDir
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create export directory: %w", err)
			}
			return writeArtifacts(cmd.OutOrStdout(), dir, doc)
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Export directory (defaults to export.output_dir)")
	return cmd
}

// writeArtifacts renders the download script, manifest, and state file for
// the document into dir.
func writeArtifacts(out io.Writer, dir string, doc *script.Document) error {
	scriptPath := filepath.Join(dir, scriptArtifact)
	if err := os.WriteFile(scriptPath, []byte(export.ShellScript(doc)), 0o755); err != nil {
		return fmt.Errorf("write download script: %w", err)
	}

	manifest, err := export.ManifestJSON(doc, time.Now())
	if err != nil {
		return err
	}
	manifestPath := filepath.Join(dir, manifestArtifact)
	if err := os.WriteFile(manifestPath, append(manifest, '\n'), 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	statePath := filepath.Join(dir, stateArtifact)
	if err := export.WriteState(statePath, doc); err != nil {
		return err
	}

	fmt.Fprintf(out, "Wrote %s\n", scriptPath)
	fmt.Fprintf(out, "Wrote %s\n", manifestPath)
	fmt.Fprintf(out, "Wrote %s\n", statePath)
	return nil
}
