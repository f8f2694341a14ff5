package main

import (
	"github.com/darknight08zz/protocol456/internal/cli"
)

func main() {
	cli.Execute()
}
