package main

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"github.com/juhyuk-code/b-roll-clipping-helper/internal/discovery"
	"github.com/juhyuk-code/b-roll-clipping-helper/internal/script"
)

// progressRenderer translates tracker transitions into terminal output. On a
// TTY it drives a progress bar over the eligible sections; otherwise it
// prints one plain line per stage transition.
type progressRenderer struct {
	mu       sync.Mutex
	out      io.Writer
	bar      *progressbar.ProgressBar
	plain    bool
	headings map[string]string
}

func newProgressRenderer(out io.Writer, doc *script.Document) *progressRenderer {
	headings := make(map[string]string)
	eligible := 0
	for _, section := range doc.Sections {
		headings[section.ID] = section.Heading
		if section.Eligible() {
			eligible++
		}
	}

	r := &progressRenderer{out: out, headings: headings}
	if !isTerminal(out) {
		r.plain = true
		return r
	}
	r.bar = progressbar.NewOptions(eligible,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription("discovering"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	return r
}

// observe is registered as the tracker's OnChange callback.
func (r *progressRenderer) observe(sectionID string, stage discovery.Stage) {
	r.mu.Lock()
	defer r.mu.Unlock()

	heading := r.headings[sectionID]
	if r.plain {
		fmt.Fprintf(r.out, "  %s: %s\n", heading, stage)
		return
	}
	if stage.Settled() {
		_ = r.bar.Add(1)
	}
}

func (r *progressRenderer) finish() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
