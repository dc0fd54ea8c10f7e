package main

import (
	"github.com/pdeclercq/becgt/cmd"
)

func main() {
	cmd.Execute()
}
