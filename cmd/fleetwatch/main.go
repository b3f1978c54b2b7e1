package main

import "github.com/Habeebu-abbi/fleetwatch/internal/cli"

func main() {
	cli.Execute()
}
