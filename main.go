package main

import "github.com/hallfarms/books/cmd"

func main() {
	cmd.Execute()
}
