package main

import (
	"os"

	"github.com/arthur-debert/modtext/cmd/modtext"
)

func main() {
	os.Exit(modtext.Execute())
}
