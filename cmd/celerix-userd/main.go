package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/celerix-dev/celerix-commerce/internal/app"
	"github.com/celerix-dev/celerix-commerce/internal/config"
)

func main() {
	a, err := app.New(config.RoleUser)
	if err != nil {
		fmt.Printf("failed to initialize user service: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.Run(ctx); err != nil {
		a.Log.Fatal("user service exited", "error", err)
	}
}
