package main

import "github.com/jacobjacobjacobjacobjacob/apple-health-data-parser/cmd"

func main() {
	cmd.Execute()
}
