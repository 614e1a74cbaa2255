package main

import (
	"github.com/setools/go-setools/pkg/cmd"
)

func main() {
	cmd.Execute()
}
