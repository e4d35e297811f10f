package main

import "github.com/hexsolve/hexsolve/cmd"

func main() {
	cmd.Execute()
}
