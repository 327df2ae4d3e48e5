// Package main provides the entry point for the webcrawl CLI.
//
// webcrawl is a breadth-first web crawler: given a seed address and a
// maximum depth, it records every hyperlink it discovers together with the
// page it was found on, and saves both metadata and raw page bodies to a
// local directory.
//
// Usage:
//
//	webcrawl crawl <start-url> <depth>
//	webcrawl history
//
// See --help for all available options.
package main

// main is the entry point for webcrawl.
func main() {
	Execute()
}
