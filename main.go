package main

import "github.com/ryan-gang/shell-mail/cmd"

func main() {
	cmd.Execute()
}
