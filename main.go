package main

import "github.com/KaramelBytes/popclean-cli/cmd"

func main() {
	cmd.Execute()
}
