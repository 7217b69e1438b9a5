package main

import "glucolog/internal/cli"

func main() {
	cli.Execute()
}
