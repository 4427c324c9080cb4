package main

import (
	"context"
	"gatekeeper/internal/app/consumers"
	"gatekeeper/internal/app/deps"
	"os"
	"os/signal"
	"syscall"

	dl "gatekeeper/internal/core/domain/logging"
)

func main() {
	deps, shutdownDeps := deps.InitDeps()
	shutdownConsumers := consumers.InitConsumers(deps)

	deps.Logger.Info(context.Background(), "Notifier worker has started.")

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-stopCh

	deps.Logger.Info(context.Background(), "Notifier worker is stopping.")
	shutdownConsumers()
	shutdownDeps()
	deps.Logger.Info(context.Background(), "Notifier worker has stopped.", dl.Entry("ok", true))
}
