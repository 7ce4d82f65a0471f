package main

import (
	"os"

	"github.com/catalogchecker/catalog-quality-checker/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
