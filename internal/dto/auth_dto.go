package dto

type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
	Password string `json:"password,omitempty"`
}

type RegisterResponse struct {
	Message    string `json:"message"`
	InsertedID string `json:"insertedId"`
}

type TokenRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type UserRoleResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type SetRoleRequest struct {
	Role   string `json:"role"`
	UserID string `json:"userId"`
}
