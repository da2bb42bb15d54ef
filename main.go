// Package main is the entry point for the simud application.
package main

import (
	"github.com/samber/lo"
	"github.com/simud-cli/simud/cmd"
	"github.com/simud-cli/simud/config"
	"github.com/simud-cli/simud/log"
	"github.com/simud-cli/simud/provider"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	// Sweep expired search results in the background.
	if store := provider.SearchCache(); store != nil {
		go store.CollectGarbage()
	}

	cmd.Execute()
}
