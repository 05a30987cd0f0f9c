package main

import "github.com/Jeet1511/EliteZero/internal/cli"

func main() {
	cli.Execute()
}
