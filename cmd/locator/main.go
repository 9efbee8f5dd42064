// Command locator inspects and serves a service definition file.
//
//	locator list --services services.yaml
//	locator get app
//	locator param db.host -o json
//	locator tree http.server
//	locator serve
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := New().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
