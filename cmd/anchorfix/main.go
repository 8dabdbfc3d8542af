// Package main provides the entry point for the anchorfix CLI.
//
// anchorfix rewrites anchor elements in rendered HTML so that theme
// buttons built from <a> tags are crawlable and keyboard accessible.
//
// Usage:
//
//	anchorfix rewrite -w public/**/*.html
//	anchorfix simulate index.html
//
// See --help for all available options.
package main

func main() {
	Execute()
}
