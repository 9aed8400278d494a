package export

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/juhyuk-code/b-roll-clipping-helper/internal/script"
	"github.com/juhyuk-code/b-roll-clipping-helper/internal/textutil"
)

// channelTokenLen caps the sanitized channel name embedded in clip filenames.
const channelTokenLen = 30

// sectionTextPreviewLen caps the section text carried into the manifest.
const sectionTextPreviewLen = 200

// clipsDir is the download directory the shell script creates and writes to.
const clipsDir = "broll_clips"

// Clip is one manifest record for a marked candidate.
type Clip struct {
	SectionIndex   int    `json:"sectionIndex"`
	SectionHeading string `json:"sectionHeading"`
	SectionText    string `json:"sectionText"`
	IdeaType       string `json:"ideaType"`
	SearchQuery    string `json:"searchQuery"`
	VideoID        string `json:"videoId"`
	VideoTitle     string `json:"videoTitle"`
	Channel        string `json:"channel"`
	Start          int    `json:"start"`
	End            int    `json:"end"`
	Confidence     string `json:"confidence"`
	Description    string `json:"description"`
	Filename       string `json:"filename"`
}

// Manifest is the serializable export record for one document.
type Manifest struct {
	ScriptTitle string `json:"scriptTitle"`
	ExportedAt  string `json:"exportedAt"`
	Clips       []Clip `json:"clips"`
}

// MarkedClips collects the marked, non-removed candidates of the document in
// section order, then insertion order within each section.
func MarkedClips(doc *script.Document) []Clip {
	var clips []Clip
	for _, section := range doc.Sections {
		for _, candidate := range section.Candidates {
			if !candidate.MarkedForDownload || candidate.Removed {
				continue
			}
			clips = append(clips, Clip{
				SectionIndex:   section.Index,
				SectionHeading: section.Heading,
				SectionText:    textutil.Ellipsize(section.Text, sectionTextPreviewLen),
				IdeaType:       string(candidate.IdeaType),
				SearchQuery:    candidate.SearchQuery,
				VideoID:        candidate.MediaID,
				VideoTitle:     candidate.MediaTitle,
				Channel:        candidate.Channel,
				Start:          candidate.Start,
				End:            candidate.End,
				Confidence:     string(candidate.Confidence),
				Description:    candidate.Description,
				Filename:       clipFilename(section.Index, candidate),
			})
		}
	}
	return clips
}

// ShellScript renders a bash script that downloads every marked clip with
// yt-dlp into a broll_clips directory.
func ShellScript(doc *script.Document) string {
	var b strings.Builder
	b.WriteString("#!/bin/bash\n")
	fmt.Fprintf(&b, "# B-Roll downloads for: %s\n", doc.Title)
	fmt.Fprintf(&b, "mkdir -p %s\n\n", clipsDir)

	for _, clip := range MarkedClips(doc) {
		fmt.Fprintf(&b, "yt-dlp --download-sections \"*%s-%s\" \\\n",
			formatClipTime(clip.Start), formatClipTime(clip.End))
		fmt.Fprintf(&b, "  -o %q \\\n", clipsDir+"/"+clip.Filename)
		fmt.Fprintf(&b, "  %q\n\n", "https://youtube.com/watch?v="+clip.VideoID)
	}

	fmt.Fprintf(&b, "echo \"Done. Downloaded $(ls %s/*.mp4 2>/dev/null | wc -l) clips.\"\n", clipsDir)
	return b.String()
}

// ManifestJSON renders the manifest as indented JSON. The timestamp is
// injected so callers control the clock.
func ManifestJSON(doc *script.Document, exportedAt time.Time) ([]byte, error) {
	manifest := Manifest{
		ScriptTitle: doc.Title,
		ExportedAt:  exportedAt.UTC().Format(time.RFC3339),
		Clips:       MarkedClips(doc),
	}
	if manifest.Clips == nil {
		manifest.Clips = []Clip{}
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return data, nil
}

// clipFilename encodes section position, idea type, channel, and the time
// range into a stable download filename.
func clipFilename(sectionIndex int, candidate *script.Candidate) string {
	channel := textutil.SanitizeToken(candidate.Channel, channelTokenLen)
	return fmt.Sprintf("s%d_%s_%s_%d-%d.mp4",
		sectionIndex+1, candidate.IdeaType, channel, candidate.Start, candidate.End)
}

// formatClipTime renders whole seconds as m:ss for yt-dlp section ranges.
func formatClipTime(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
