package main

import "github.com/Sadisms/stack-radar/internal/cmd"

func main() {
	cmd.Execute()
}
