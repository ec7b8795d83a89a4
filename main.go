package main

import "github.com/tinyss/tinyss/cmd"

func main() {
	cmd.Execute()
}
