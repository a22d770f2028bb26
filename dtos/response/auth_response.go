package response

type UserSummary struct {
	Id    string `json:"id"`
	Email string `json:"email"`
}

type CeremonyResult struct {
	Verified bool         `json:"verified"`
	User     *UserSummary `json:"user,omitempty"`
}

type AuthResponse struct {
	Success bool         `json:"success"`
	User    *UserSummary `json:"user"`
}
