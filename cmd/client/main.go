package main

import "datasets/cmd/client/cmd"

func main() {
	cmd.Execute()
}
