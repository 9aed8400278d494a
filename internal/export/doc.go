// Package export renders the marked candidates of a document into durable
// artifacts: a yt-dlp shell script and a JSON manifest. Both renderers are
// pure functions of the document state.
package export
