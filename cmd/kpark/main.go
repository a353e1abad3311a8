package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/kparkhq/kpark-cli/internal/client/cli"
	"github.com/kparkhq/kpark-cli/internal/client/config"
	"github.com/kparkhq/kpark-cli/internal/logging"
)

// set via -ldflags at release time
var (
	buildVersion = "N/A"
	buildDate    = "N/A"
)

func main() {
	fmt.Fprintf(os.Stdout, "kpark %s (built %s)\n", buildVersion, buildDate)

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := cli.NewApp(ctx, cfg, logging.NewDefault())
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
