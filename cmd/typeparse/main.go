// Package main provides the typeparse CLI.
package main

import "github.com/mesh-intelligence/typeparse/internal/cli"

func main() {
	cli.Execute()
}
