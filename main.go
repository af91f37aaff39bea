// Package main is the entry point for the hoopsmetrics CLI, which ingests
// basketball game documents and computes game narratives and season tables.
package main

import "github.com/pable/go-hoops-metrics/cmd"

func main() {
	cmd.Execute()
}
