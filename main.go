package main

import "pagefit/cmd"

func main() {
	cmd.Execute()
}
