package main

import (
	"github.com/sqlcore/sqlcore/cmd"
)

func main() {
	cmd.Execute()
}
