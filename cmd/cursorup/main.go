package main

import "cursorup/cmd/cursorup/cmd"

func main() {
	cmd.Execute()
}
