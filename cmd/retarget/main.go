package main

import "github.com/kevmal/retarget/cmd/retarget/commands"

func main() {
	commands.Execute()
}
