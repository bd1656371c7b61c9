package main

import "shale/cmd"

func main() {
	cmd.Execute()
}
