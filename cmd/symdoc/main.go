package main

import "symdoc/internal/cli"

func main() {
	cli.Execute()
}
