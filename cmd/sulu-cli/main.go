package main

import "sulu/cmd/sulu-cli/cmd"

func main() {
	cmd.Execute()
}
