package main

import (
	"github.com/Sena-ops/lintmux/cmd"
)

func main() {
	cmd.Execute()
}
