package main

import "novella/cmd/novella-cli/cmd"

func main() {
	cmd.Execute()
}
