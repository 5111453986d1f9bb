package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/lehigh-university-libraries/bookstruct/cmd"
	"github.com/lehigh-university-libraries/bookstruct/internal/utils"
)

func main() {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			utils.ExitOnError("Error loading .env file", err)
		}
	}

	if err := fang.Execute(context.Background(), cmd.RootCmd); err != nil {
		os.Exit(1)
	}
}
