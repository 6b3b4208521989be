package main

import (
	"context"
	"ustcatalog/cmd/catalog-cli/commands"
	"ustcatalog/lib/telemetry"
)

func main() {
	telemetry.SetupFromEnv(context.Background(), "catalog-cli")
	telemetry.InitSlog(true)
	commands.ExecuteContext(context.Background())
}
