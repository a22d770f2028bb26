package response

import "github.com/go-webauthn/webauthn/protocol"

// Mediation hints for the browser credential request. "optional" asks for a
// full prompt, "conditional" enables passive autofill selection.
const (
	MediationOptional    = "optional"
	MediationConditional = "conditional"
)

type LoginOptions struct {
	PublicKey protocol.PublicKeyCredentialRequestOptions `json:"publicKey"`
	Mediation string                                     `json:"mediation"`
}
