package domain

import (
	"encoding/base64"
	"strings"
	"time"

	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/webauthn"
)

const (
	DeviceTypeSingleDevice = "singleDevice"
	DeviceTypeMultiDevice  = "multiDevice"
)

// Authenticator is one registered WebAuthn credential. The credential id is
// stored in its canonical base64url form so the unique index compares stable
// text rather than raw bytes.
type Authenticator struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	UserID          string     `gorm:"size:36;not null;index" json:"user_id"`
	CredentialID    string     `gorm:"size:255;not null;unique" json:"credential_id"`
	PublicKey       []byte     `gorm:"not null" json:"-"`
	SignCount       uint32     `gorm:"not null" json:"sign_count"`
	DeviceType      string     `gorm:"size:32;not null;default:singleDevice" json:"device_type"`
	BackedUp        bool       `gorm:"not null;default:false" json:"backed_up"`
	Transports      string     `gorm:"size:255" json:"transports"`
	AAGUID          []byte     `json:"-"`
	AttestationType string     `gorm:"size:32" json:"-"`
	CreatedAt       *time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       *time.Time `gorm:"default:null" json:"updated_at"`
}

func (Authenticator) TableName() string {
	return "user_authenticators"
}

// EncodeCredentialID converts a raw credential id into the textual form used
// as the store's unique key.
func EncodeCredentialID(rawID []byte) string {
	return base64.RawURLEncoding.EncodeToString(rawID)
}

func (a Authenticator) RawCredentialID() []byte {
	rawID, err := base64.RawURLEncoding.DecodeString(a.CredentialID)
	if err != nil {
		return nil
	}
	return rawID
}

func (a Authenticator) TransportHints() []protocol.AuthenticatorTransport {
	if a.Transports == "" {
		return nil
	}
	var hints []protocol.AuthenticatorTransport
	for _, t := range strings.Split(a.Transports, ",") {
		hints = append(hints, protocol.AuthenticatorTransport(t))
	}
	return hints
}

// JoinTransports flattens browser transport hints into the comma separated
// column value.
func JoinTransports(transports []protocol.AuthenticatorTransport) string {
	parts := make([]string, 0, len(transports))
	for _, t := range transports {
		parts = append(parts, string(t))
	}
	return strings.Join(parts, ",")
}

func (a Authenticator) WebAuthnCredential() webauthn.Credential {
	return webauthn.Credential{
		ID:              a.RawCredentialID(),
		PublicKey:       a.PublicKey,
		AttestationType: a.AttestationType,
		Transport:       a.TransportHints(),
		Flags: webauthn.CredentialFlags{
			BackupEligible: a.DeviceType == DeviceTypeMultiDevice,
			BackupState:    a.BackedUp,
		},
		Authenticator: webauthn.Authenticator{
			AAGUID:    a.AAGUID,
			SignCount: a.SignCount,
		},
	}
}
