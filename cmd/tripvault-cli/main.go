package main

import (
	"tripvault-backend/cmd/tripvault-cli/commands"
	"tripvault-backend/lib/serviceutil"
	"tripvault-backend/lib/telemetry"
)

func main() {
	ctx := serviceutil.SignalContext()
	telemetry.SetupFromEnv(ctx, "tripvault-cli")
	telemetry.InitSlog(true)
	telemetry.InstrumentPerfStats(ctx)
	commands.ExecuteContext(ctx)
}
