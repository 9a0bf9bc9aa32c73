package dto

import "time"

// APIAuthRequest credenciales de servicio para obtener un token de alcance "api".
type APIAuthRequest struct {
	User string `json:"user"`
	Pass string `json:"pass"`
	Key  string `json:"key"`
}

// APIAuthResponse salida de /apiAuth.
type APIAuthResponse struct {
	Status string `json:"status"`
	Token  string `json:"token"`
}

// UserAuthRequest login del nivel interno (requiere token "api").
type UserAuthRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserAuthResponse salida de /userAuth.
type UserAuthResponse struct {
	Status    string       `json:"status"`
	UserToken string       `json:"userToken"`
	UserData  UserResponse `json:"userData"`
}

// RegisterRequest alta pública de usuario.
type RegisterRequest struct {
	Name     string `json:"name"`
	Mobile   string `json:"mobile"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest login del nivel público.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse salida de /register y /login.
type AuthResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

// UserResponse proyección pública del usuario (sin salt ni hash).
type UserResponse struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Mobile    string    `json:"mobile"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
