package main

import "github.com/maximthomas/meetnow-auth/cmd"

func main() {
	cmd.Execute()
}
