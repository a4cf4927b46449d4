package main

import (
	"os"

	"github.com/searchpro/settings/cli"
)

func main() {
	if err := cli.RootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
