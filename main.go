package main

import (
	"expo-booth/cmd"

	_ "go.uber.org/automaxprocs"
)

func main() {
	cmd.Start()
}
