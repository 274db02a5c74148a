package main

import "github.com/brk3/lifemanager/cmd"

func main() {
	cmd.Execute()
}
