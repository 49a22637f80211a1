package main

import "nathanbeddoewebdev/tint/cmd"

func main() {
	cmd.Execute()
}
