package main

import (
	"healthcare-admin-api/cmd/bootstrap"

	"github.com/sirupsen/logrus"
)

func main() {
	app, err := bootstrap.New()
	if err != nil {
		logrus.Fatalf("Failed to initialize application: %v", err)
	}

	// Blocks until SIGINT/SIGTERM, then shuts down gracefully
	app.Run()
}
