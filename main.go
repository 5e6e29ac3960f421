// Package main is the entry point for the vbscout CLI tool, which parses
// volleyball scouting transcripts and reports attack-option tallies.
package main

import "github.com/pable/vbscout/cmd"

func main() {
	cmd.Execute()
}
