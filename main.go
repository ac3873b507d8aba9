package main

import "nathanbeddoewebdev/sapmon/cmd"

func main() {
	cmd.Execute()
}
