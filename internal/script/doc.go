// Package script defines the document model for narration scripts and the
// parser that turns raw text into it.
//
// A Document is an ordered list of Sections, each carrying the B-roll ideas
// and footage candidates discovered for it. Parsing is best-effort and never
// fails on malformed input: three splitting strategies are tried in priority
// order (## headers, horizontal rules, blank-line paragraphs) and the first
// one producing at least one section wins. Embedded <!-- BROLL --> annotation
// blocks are extracted into ideas and stripped from the stored section text.
//
// Callers must treat an empty section list as the "no sections found"
// outcome; it is a normal result, not an error.
package script
