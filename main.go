package main

import "github.com/benbotluks/staffear/cmd"

func main() {
	cmd.Execute()
}
