package main

import "github.com/jski/python-container-builder/cmd"

func main() {
	cmd.Execute()
}
