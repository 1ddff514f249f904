package main

import "codeatlas/internal/cli"

func main() {
	cli.Execute()
}
