// Package report renders anchorfix results as GitHub Flavored Markdown:
// a per-page table of rewritten anchors for the rewrite command and a
// table of click outcomes for the simulate command.
package report
