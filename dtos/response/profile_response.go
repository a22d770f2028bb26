package response

import "time"

type AuthenticatorSummary struct {
	CredentialId string     `json:"credential_id"`
	DeviceType   string     `json:"device_type"`
	BackedUp     bool       `json:"backed_up"`
	CreatedAt    *time.Time `json:"created_at"`
}

type Profile struct {
	Id             string                 `json:"id"`
	Email          string                 `json:"email"`
	HasPassword    bool                   `json:"has_password"`
	HasPasskey     bool                   `json:"has_passkey"`
	Authenticators []AuthenticatorSummary `json:"authenticators"`
}

type ProfileResponse struct {
	User *Profile `json:"user"`
}
