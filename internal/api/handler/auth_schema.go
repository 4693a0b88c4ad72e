package handler

// loginRequest is the POST /api/auth/login payload.
type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// userSummary is the public projection of a user: never the password.
type userSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type loginResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Token   string       `json:"token,omitempty"`
	User    *userSummary `json:"user,omitempty"`
}

// messageResponse is the generic {success, message} envelope used for
// validation and authentication failures.
type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
