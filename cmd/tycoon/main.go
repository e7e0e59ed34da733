package main

import (
	"github.com/pkalnins/tycoon-go/internal/cli"
)

func main() {
	cli.Execute()
}
