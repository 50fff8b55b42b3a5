package main

import "github.com/iksnae/git-weekly/cmd"

func main() {
	cmd.Execute()
}
