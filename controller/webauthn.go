package controller

import (
	"net/http"
	"time"

	"passkey_auth_ms/config"
	"passkey_auth_ms/domain"
	"passkey_auth_ms/dtos/request"
	"passkey_auth_ms/dtos/response"
	"passkey_auth_ms/services"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

const (
	registrationCeremonyCookie = "reg_ceremony"
	loginCeremonyCookie        = "auth_ceremony"
)

type IWebAuthnController interface {
	RegisterOptions(c *fiber.Ctx) error
	RegisterVerify(c *fiber.Ctx) error
	LoginOptions(c *fiber.Ctx) error
	LoginVerify(c *fiber.Ctx) error
}

type WebAuthnController struct {
	webauthn services.IWebAuthnService
	session  services.ISessionService
}

func NewWebAuthnController(webauthn services.IWebAuthnService, session services.ISessionService) IWebAuthnController {
	return &WebAuthnController{webauthn: webauthn, session: session}
}

func (wc *WebAuthnController) RegisterOptions(c *fiber.Ctx) error {
	body := c.Locals("body").(*request.BeginRegistrationRequest)

	options, ceremonyID, err := wc.webauthn.BeginRegistration(body.Email)
	if err != nil {
		return fail(c, err)
	}

	setCeremonyCookie(c, registrationCeremonyCookie, ceremonyID)
	return c.Status(fiber.StatusOK).JSON(options)
}

func (wc *WebAuthnController) RegisterVerify(c *fiber.Ctx) error {
	ceremonyID := c.Cookies(registrationCeremonyCookie)
	clearCeremonyCookie(c, registrationCeremonyCookie)
	if ceremonyID == "" {
		return fail(c, domain.ErrChallengeExpired)
	}

	req := new(http.Request)
	if err := fasthttpadaptor.ConvertRequest(c.Context(), req, true); err != nil {
		return fail(c, domain.ErrMalformedRequest)
	}

	user, err := wc.webauthn.FinishRegistration(ceremonyID, req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(response.CeremonyResult{
		Verified: true,
		User:     &response.UserSummary{Id: user.Id, Email: user.Email},
	})
}

func (wc *WebAuthnController) LoginOptions(c *fiber.Ctx) error {
	body := c.Locals("body").(*request.BeginLoginRequest)

	options, ceremonyID, mediation, err := wc.webauthn.BeginLogin(body.Email)
	if err != nil {
		return fail(c, err)
	}

	setCeremonyCookie(c, loginCeremonyCookie, ceremonyID)
	return c.Status(fiber.StatusOK).JSON(response.LoginOptions{
		PublicKey: options.Response,
		Mediation: mediation,
	})
}

func (wc *WebAuthnController) LoginVerify(c *fiber.Ctx) error {
	ceremonyID := c.Cookies(loginCeremonyCookie)
	clearCeremonyCookie(c, loginCeremonyCookie)
	if ceremonyID == "" {
		return fail(c, domain.ErrChallengeExpired)
	}

	req := new(http.Request)
	if err := fasthttpadaptor.ConvertRequest(c.Context(), req, true); err != nil {
		return fail(c, domain.ErrMalformedRequest)
	}

	user, err := wc.webauthn.FinishLogin(ceremonyID, req)
	if err != nil {
		return fail(c, err)
	}

	token, err := wc.session.Issue(user)
	if err != nil {
		return fail(c, err)
	}
	setSessionCookie(c, token)

	return c.Status(fiber.StatusOK).JSON(response.CeremonyResult{
		Verified: true,
		User:     &response.UserSummary{Id: user.Id, Email: user.Email},
	})
}

func setCeremonyCookie(c *fiber.Ctx, name string, ceremonyID string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    ceremonyID,
		MaxAge:   config.Conf.Application.WebAuthn.ChallengeTTLInSeconds,
		HTTPOnly: true,
		Secure:   config.Conf.Application.Production(),
		SameSite: fiber.CookieSameSiteStrictMode,
		Path:     "/",
	})
}

func clearCeremonyCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   config.Conf.Application.Production(),
		SameSite: fiber.CookieSameSiteStrictMode,
		Path:     "/",
	})
}
