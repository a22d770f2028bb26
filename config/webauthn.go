package config

import (
	"time"

	"github.com/go-webauthn/webauthn/webauthn"
)

func InitWebAuthn() *webauthn.WebAuthn {
	challengeTTL := time.Duration(Conf.Application.WebAuthn.ChallengeTTLInSeconds) * time.Second

	wa, err := webauthn.New(&webauthn.Config{
		RPDisplayName: Conf.Application.WebAuthn.RpDisplayName,
		RPID:          Conf.Application.WebAuthn.RpID,
		RPOrigins:     []string{Conf.Application.WebAuthn.RpOrigin},
		Timeouts: webauthn.TimeoutsConfig{
			Registration: webauthn.TimeoutConfig{
				Enforce:    true,
				Timeout:    challengeTTL,
				TimeoutUVD: challengeTTL,
			},
			Login: webauthn.TimeoutConfig{
				Enforce:    true,
				Timeout:    challengeTTL,
				TimeoutUVD: challengeTTL,
			},
		},
	})

	if err != nil {
		panic(err)
	}
	return wa
}
