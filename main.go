package main

import "github.com/notargets/meshneighbors/cmd"

func main() {
	cmd.Execute()
}
