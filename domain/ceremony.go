package domain

// CeremonyKind separates registration and authentication challenges so a
// challenge issued for one ceremony can never complete the other.
type CeremonyKind string

const (
	CeremonyRegistration   CeremonyKind = "registration"
	CeremonyAuthentication CeremonyKind = "authentication"
)
