package domain

import (
	"time"

	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/webauthn"
)

type User struct {
	Id             string          `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt      *time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      *time.Time      `gorm:"default:null" json:"updated_at"`
	Email          string          `gorm:"size:100;not null;uniqueIndex" json:"email"`
	Password       string          `gorm:"size:100" json:"-"`
	Authenticators []Authenticator `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"authenticators"`
}

func (u User) WebAuthnID() []byte {
	return []byte(u.Id)
}

func (u User) WebAuthnName() string {
	return u.Email
}

func (u User) WebAuthnDisplayName() string {
	return u.Email
}

func (u User) WebAuthnCredentials() []webauthn.Credential {
	var creds []webauthn.Credential
	for _, a := range u.Authenticators {
		creds = append(creds, a.WebAuthnCredential())
	}
	return creds
}

// CredentialDescriptors lists the user's registered credentials for
// exclude/allow lists handed to the browser.
func (u User) CredentialDescriptors() []protocol.CredentialDescriptor {
	var descriptors []protocol.CredentialDescriptor
	for _, c := range u.WebAuthnCredentials() {
		descriptors = append(descriptors, c.Descriptor())
	}
	return descriptors
}

func (u User) HasPassword() bool {
	return u.Password != ""
}
