package main

import "github.com/vivek2589/bangalore-graph-package/cmd"

func main() {
	cmd.Execute()
}
