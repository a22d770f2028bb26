package request

type DeleteAuthenticatorRequest struct {
	CredentialId string `json:"credential_id" validate:"required"`
}
