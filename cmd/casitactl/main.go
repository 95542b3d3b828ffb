package main

import "casita/internal/cli"

func main() {
	cli.Execute()
}
