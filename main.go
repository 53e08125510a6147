package main

import "knowviz/cmd"

func main() {
	cmd.Execute()
}
