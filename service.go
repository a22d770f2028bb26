package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"passkey_auth_ms/config"
	"passkey_auth_ms/controller"
	"passkey_auth_ms/middleware"
	"passkey_auth_ms/repository"
	"passkey_auth_ms/services"

	"github.com/IBM/sarama"
	"github.com/go-webauthn/webauthn/webauthn"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type service struct {
	dbConnection *gorm.DB

	redisClient *redis.Client

	kafkaProducer sarama.SyncProducer

	webAuthn *webauthn.WebAuthn

	logger *zap.Logger

	// Repository
	userRepository          repository.IUserRepository
	authenticatorRepository repository.IAuthenticatorRepository

	// Service
	jwtService       services.IJWTService
	sessionService   services.ISessionService
	challengeService services.IChallengeService
	eventService     services.IEventService
	webAuthnService  services.IWebAuthnService
	userService      services.IUserService

	// Controller
	authController          controller.IAuthController
	webAuthnController      controller.IWebAuthnController
	authenticatorController controller.IAuthenticatorController
}

func (s *service) Start() {
	log.Info("Opening database connection...")
	s.dbConnection = config.OpenDatabaseConnection(config.Conf.Application.Datasource.PrimaryURL)
	config.Migrate(config.Conf.Application.Datasource.PrimaryURL)

	log.Info("Opening redis connection...")
	s.redisClient = config.ConnectToRedis(config.Conf.Application.Redis.Host)

	log.Info("Opening kafka producer...")
	s.kafkaProducer = config.InitKafkaProducer()

	log.Info("WebAuthn config")
	s.webAuthn = config.InitWebAuthn()

	s.logger = config.InitLogger()
	middleware.InitValidator()

	s.DependencyInjection()

	app := NewServer(s.logger, s.sessionService, s.authController, s.webAuthnController, s.authenticatorController).Start()

	log.Info("Server starting..")
	go func() {
		if err := app.Listen(config.Conf.Application.Server.Port); err != nil {
			log.Fatal("Server failed to start")
		}
	}()
	s.gracefulShutdown(app)
}

func (s *service) DependencyInjection() {
	security := config.Conf.Application.Security

	s.jwtService = &services.JWTService{
		Secret: []byte(security.Secret),
		Issuer: security.Issuer,
	}

	s.userRepository = repository.NewUserRepository()
	s.authenticatorRepository = repository.NewAuthenticatorRepository()

	challengeTTL := time.Duration(config.Conf.Application.WebAuthn.ChallengeTTLInSeconds) * time.Second
	sessionTTL := time.Duration(security.SessionValidityInSeconds) * time.Second

	s.challengeService = services.NewChallengeService(s.redisClient, challengeTTL)
	s.sessionService = services.NewSessionService(s.dbConnection, s.userRepository, s.jwtService, sessionTTL)
	s.eventService = services.NewEventService(s.kafkaProducer, config.Conf.Application.Kafka.Topic, s.logger)
	s.webAuthnService = services.NewWebAuthnService(
		s.webAuthn,
		s.dbConnection,
		s.userRepository,
		s.authenticatorRepository,
		s.challengeService,
		s.eventService,
		s.logger,
		security.StrictSignCounter,
	)
	s.userService = services.NewUserService(s.dbConnection, s.userRepository, s.authenticatorRepository, s.eventService, s.logger)

	s.authController = controller.NewAuthController(s.userService, s.sessionService)
	s.webAuthnController = controller.NewWebAuthnController(s.webAuthnService, s.sessionService)
	s.authenticatorController = controller.NewAuthenticatorController(s.userService)
}

func (s *service) gracefulShutdown(app *fiber.App) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := app.Shutdown(); err != nil {
		log.Error("error while shutting down app", err)
	}

	if err := s.kafkaProducer.Close(); err != nil {
		log.Error("error while closing kafka producer", err)
	}

	done := make(chan bool)
	go func() {
		config.CloseDatabaseConnection(s.dbConnection)
		done <- true
	}()

	select {
	case <-ctx.Done():
		log.Error("timeout while shutting down database", ctx.Err())
	case <-done:
		log.Info("database is gracefully shutdown")
	}
}
