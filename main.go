package main

import "pyscope/cmd"

func main() {
	cmd.Execute()
}
