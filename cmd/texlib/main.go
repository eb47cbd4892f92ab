package main

import "github.com/mydehq/texlib/internal/cli"

func main() {
	cli.Execute()
}
