package request

type BeginRegistrationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type BeginLoginRequest struct {
	Email string `json:"email" validate:"omitempty,email"`
}
