package main

import (
	"os"

	"github.com/bnema/shopscript-cli/cmd"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is normal; only the environment is used then.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
