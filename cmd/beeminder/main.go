package main

import "github.com/jpdarago/beeminder/internal/cli"

// main delegates to [cli.Execute], which runs the command tree and exits
// non-zero on any error.
func main() {
	cli.Execute()
}
