// Command agenda validates and applies appointment, contact, and task records.
package main

import "github.com/mesh-intelligence/agenda/internal/cli"

func main() {
	cli.Execute()
}
