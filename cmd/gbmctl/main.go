package main

import (
	"os"

	"github.com/vkngwrapper/bufmgr/cmd/gbmctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
