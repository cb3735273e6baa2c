package main

import "github.com/theirongolddev/billtracker/cmd"

func main() {
	cmd.Execute()
}
