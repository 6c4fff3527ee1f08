package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/Jitender135/AI-Powered-Resume-Screener-CVNLP/cmd"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
