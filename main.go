package main

import (
	"os"

	"passkey_auth_ms/config"

	"github.com/alasgarovnamig/confhandler"
	"github.com/gofiber/fiber/v2/log"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./resources/application.yaml"
	}

	defer func() {
		if r := recover(); r != nil {
			os.Exit(1)
		}
	}()

	log.Info("Loading configuration...")
	if err := confhandler.LoadConfigToStruct(configPath, &config.Conf); err != nil {
		log.Panic("Error loading configuration file")
	}
	log.Info("Configuration loaded successfully")

	log.Info("Starting server...")
	s := new(service)
	s.Start()
}
