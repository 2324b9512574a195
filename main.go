package main

import (
	"os"

	"github.com/scan-io-git/axe-sarif/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
