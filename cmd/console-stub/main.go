// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

// console-stub runs a local in-memory dispute API for development. It serves
// both persona endpoint families with the production wire contract.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/fixnado/console/internal/apistub"
	"github.com/fixnado/console/internal/config"
)

func main() {
	configPath := flag.String("config", "", "path to console.hjson (optional)")
	addr := flag.String("addr", "", "listen address (overrides config)")
	flag.Parse()

	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	listen := "127.0.0.1:4780"
	if *configPath != "" {
		cfg, err := config.NewLoader().Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		listen = fmt.Sprintf("%s:%d", cfg.Stub.Host, cfg.Stub.Port)
		configureLogger(logger, cfg)
	}
	if *addr != "" {
		listen = *addr
	}

	srv := apistub.NewServer(logger)
	logger.WithField("addr", listen).Info("dispute API stub listening")
	if err := http.ListenAndServe(listen, srv); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func configureLogger(logger *logrus.Logger, cfg *config.Config) {
	if level, err := logrus.ParseLevel(cfg.Logging.Level); err == nil {
		logger.SetLevel(level)
	}
	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
}
