package main

import "github.com/flowsim/sharpib/cmd"

func main() {
	cmd.Execute()
}
