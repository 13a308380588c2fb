package main

import "uforactl/cmd"

func main() {
	cmd.Execute()
}
