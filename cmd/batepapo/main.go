package main

import "github.com/uolchat/batepapo/internal/cli"

func main() {
	cli.Execute()
}
