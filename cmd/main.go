package main

import cmd "github.com/kerbaras/anitrack/cmd/anitrack"

func main() {
	cmd.Execute()
}
