package main

import "github.com/kstrand/vinyl/cmd"

func main() {
	cmd.Execute()
}
