// Package discovery runs the staged footage-discovery pipeline over a
// parsed script.
//
// Each eligible section moves through Ideating, Searching, and Localizing
// before settling at Done or Failed; the Tracker reports the current stage
// per section. Sections run concurrently and independently: a failure never
// crosses a section boundary, and within the search and localization
// fan-outs a failure never crosses an idea boundary. Only ideation failure
// marks a section Failed: search failures degrade to empty result lists and
// localization or transcript failures degrade to unverified fallback
// candidates, so a completed run always leaves a fully reviewable document.
//
// The same localization path is re-entered outside the bulk run for manual
// queries, text-selection suggestions, and direct video URLs.
package discovery
