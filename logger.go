package main

import (
	"os"

	"go.uber.org/zap"
)

// logger defaults to a nop so helpers stay usable from tests; main swaps in
// the real one before anything interesting happens.
var logger = zap.NewNop()

func initLogger() {
	var err error
	if os.Getenv("APP_ENV") == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
}
