package main

import (
	"github.com/joho/godotenv"

	"fyyur/internal/config"
)

func loadConfig() (*config.Config, error) {
	_ = godotenv.Load("config/local.env")
	return config.Load()
}
