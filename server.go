package main

import (
	"passkey_auth_ms/config"
	"passkey_auth_ms/controller"
	"passkey_auth_ms/dtos/request"
	"passkey_auth_ms/middleware"
	"passkey_auth_ms/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Server struct {
	Logger                  *zap.Logger
	SessionService          services.ISessionService
	AuthController          controller.IAuthController
	WebAuthnController      controller.IWebAuthnController
	AuthenticatorController controller.IAuthenticatorController
}

func NewServer(
	logger *zap.Logger,
	sessionService services.ISessionService,
	authController controller.IAuthController,
	webAuthnController controller.IWebAuthnController,
	authenticatorController controller.IAuthenticatorController,
) *Server {
	return &Server{
		Logger:                  logger,
		SessionService:          sessionService,
		AuthController:          authController,
		WebAuthnController:      webAuthnController,
		AuthenticatorController: authenticatorController,
	}
}

func (s *Server) Start() *fiber.App {
	app := fiber.New()

	app.Use(middleware.RecoveryMiddleware(s.Logger))
	app.Use(middleware.LoggingMiddleware(s.Logger))

	contextPath := app.Group(config.Conf.Application.Server.ContextPath)
	apiVersion := contextPath.Group(config.Conf.Application.Server.ApiVersion)

	authGroup := apiVersion.Group("/auth")

	authGroup.Post("/register/options", middleware.ValidateBody[request.BeginRegistrationRequest](), s.WebAuthnController.RegisterOptions)
	authGroup.Post("/register/verify", s.WebAuthnController.RegisterVerify)
	authGroup.Post("/login/options", middleware.ValidateBody[request.BeginLoginRequest](), s.WebAuthnController.LoginOptions)
	authGroup.Post("/login/verify", s.WebAuthnController.LoginVerify)

	authGroup.Post("/register-password", middleware.ValidateBody[request.RegisterPasswordRequest](), s.AuthController.RegisterPassword)
	authGroup.Post("/login-password", middleware.ValidateBody[request.LoginPasswordRequest](), s.AuthController.LoginPassword)
	authGroup.Post("/logout", s.AuthController.Logout)
	authGroup.Get("/me", s.AuthController.Me)

	authGroup.Delete("/authenticator",
		middleware.AuthMiddleware(s.SessionService),
		middleware.ValidateBody[request.DeleteAuthenticatorRequest](),
		s.AuthenticatorController.Delete)

	return app
}
