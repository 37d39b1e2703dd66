package main

import "github.com/cusox/bgmeta/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
