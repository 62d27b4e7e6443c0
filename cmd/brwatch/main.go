package main

import "brwatch/internal/cli"

func main() {
	cli.Execute()
}
