package main

import (
	"os"

	"github.com/akhelifi/bibliosort/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
