package main

import "github.com/saubh/planwise/internal/cli"

func main() {
	cli.Execute()
}
