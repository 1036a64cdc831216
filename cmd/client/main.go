package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/posadmin/internal/client/billing"
	"github.com/dmitrijs2005/posadmin/internal/client/cli"
	"github.com/dmitrijs2005/posadmin/internal/client/client"
	"github.com/dmitrijs2005/posadmin/internal/client/config"
	"github.com/dmitrijs2005/posadmin/internal/client/credstore"
	"github.com/dmitrijs2005/posadmin/internal/client/repositories"
	"github.com/dmitrijs2005/posadmin/internal/client/services"
	"github.com/dmitrijs2005/posadmin/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		return err
	}

	log, err := logging.New(os.Stderr, logging.Options{
		Backend: cfg.LogBackend,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
	if err != nil {
		return err
	}
	if z, ok := log.(*logging.ZapLogger); ok {
		defer func() { _ = z.Sync() }()
	}

	store, closeStore, err := credstore.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Warn(ctx, "failed to close credential store", "error", err)
		}
	}()

	gw := client.New(client.Options{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.RequestTimeout,
		Logger:  log,
		Metrics: client.NewMetrics(prometheus.DefaultRegisterer),
	})

	session := services.NewSessionManager(client.NewAuthAPI(gw), store, services.Policy{
		RequireAdminRole:       cfg.RequireAdminRole,
		AutoLoginAfterRegister: cfg.AutoLoginAfterRegister,
	}, log)

	repos := repositories.NewSet(gw.WithTokenSource(session))

	app := cli.NewApp(session, repos, billing.FromSet(repos), log, os.Stdin, os.Stdout)
	app.Run(ctx)
	return nil
}
