// cmd/opsdeck/main.go
package main

import (
	cmd "github.com/opsdeck/opsdeck/internal/cli"
)

// main starts the opsdeck CLI application by delegating to the cobra root
// command defined in the cli package.
func main() {
	cmd.Execute()
}
