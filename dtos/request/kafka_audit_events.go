package request

import "time"

type UserRegisteredEvent struct {
	UserId string    `json:"user_id"`
	Email  string    `json:"email"`
	Method string    `json:"method"`
	At     time.Time `json:"at"`
}

type PasskeyRegisteredEvent struct {
	UserId       string    `json:"user_id"`
	CredentialId string    `json:"credential_id"`
	DeviceType   string    `json:"device_type"`
	At           time.Time `json:"at"`
}

type PasskeyLoginEvent struct {
	UserId       string    `json:"user_id"`
	CredentialId string    `json:"credential_id"`
	SignCount    uint32    `json:"sign_count"`
	At           time.Time `json:"at"`
}
