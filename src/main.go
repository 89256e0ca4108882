package main

import "github.com/ProjectsTask/EasySwapMarket/src/cmd"

func main() {
	cmd.Execute()
}
