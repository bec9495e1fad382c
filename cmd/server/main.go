package main

import (
	"context"
	"os"

	"github.com/preston-bernstein/sports-scores-service/internal/cli"
)

const appVersion = "dev"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}
	os.Exit(cli.Execute(context.Background(), cli.App{Version: appVersion}, os.Args[1:]))
}
