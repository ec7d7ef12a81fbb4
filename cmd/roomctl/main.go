package main

import (
	"github.com/tableroom/tableroom/internal/cli"
)

func main() {
	cli.Execute()
}
