package main

import "github.com/bizdir/bizdirapi/cmd"

func main() {
	cmd.Execute()
}
