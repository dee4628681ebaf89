package dto

// SignupRequest payload for POST /signup. Designation carries the role.
type SignupRequest struct {
	Username    string `json:"username" form:"username"`
	Email       string `json:"email" form:"email"`
	Password    string `json:"password" form:"password"`
	Designation string `json:"designation" form:"designation"`
}

// LoginRequest payload for POST /login.
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// SignupResponse is returned after a successful signup.
type SignupResponse struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect"`
}

// LoginResponse carries the bearer token and the role landing page.
type LoginResponse struct {
	Message  string `json:"message"`
	Token    string `json:"token"`
	Role     string `json:"role"`
	Redirect string `json:"redirect"`
}

// MessageResponse is the plain acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}
