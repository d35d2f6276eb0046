package main

import "github.com/brogergvhs/magnify/cmd"

func main() {
	cmd.Execute()
}
