package main

import "github.com/keyscribe/keyscribe/cmd"

func main() {
	cmd.Execute()
}
