package main

import (
	"context"

	"github.com/ledgerkeeper/ledgerkeeper/internal/cli"
	"github.com/ledgerkeeper/ledgerkeeper/internal/cli/config"
)

func main() {
	app := cli.NewApp(config.LoadConfig())
	app.Run(context.Background())
}
