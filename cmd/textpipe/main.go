// Package main provides the textpipe command, running the configured text pipelines.
package main

func main() {
	Execute()
}
