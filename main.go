// Package main is the entry point for the mockscan CLI.
package main

import "mockscan.dev/pkg/mockscan/cmd"

func main() {
	cmd.Execute()
}
