package main

import (
	"fxbot/internal/app"

	"github.com/sirupsen/logrus"
)

// @title fxbot API
// @version 1.0
// @description Read-only rate lookups and manual snapshot refresh for the fxbot chat bot.
// @BasePath /api/v1
func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Fatal("fxbot stopped")
	}
}
