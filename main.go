package main

import "github.com/theirongolddev/statline/cmd"

func main() {
	cmd.Execute()
}
