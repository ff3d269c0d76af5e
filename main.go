package main

import "github.com/samuelcardenasg23/book-play/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
