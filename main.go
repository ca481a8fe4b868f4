package main

import "github.com/mkretz/budgetwatch/cmd"

func main() {
	cmd.Execute()
}
