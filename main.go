// @title Bible Trivia API
// @version 1.0
// @description Quiz sections, scoring and leaderboards for the Bible trivia app.

// @host localhost:8000
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"bible_trivia_backend/internal/cli"
	"os"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
