package main

import (
	"github.com/andrescamacho/parking-garage/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
