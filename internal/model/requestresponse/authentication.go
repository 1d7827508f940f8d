package requestresponse

// LoginRequest : тело запроса на аутентификацию
type LoginRequest struct {
	Email    string `json:"email" example:"a@b.com"`
	Password string `json:"password" example:"Secure123"`
}

// LoginResponse : ответ на аутентификацию. Для web клиентов токены лежат в cookie, а не в теле
type LoginResponse struct {
	Success      bool   `json:"success" example:"true"`
	Message      string `json:"message" example:"Login successful"`
	AccessToken  string `json:"access_token,omitempty" example:"eyJhbGciOiJIUzUxMiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string `json:"refresh_token,omitempty" example:"eyJhbGciOiJIUzUxMiIsInR5cCI6IkpXVCJ9..."`
	ExpiresIn    int64  `json:"expires_in,omitempty" example:"900"`
}

// RefreshTokenRequest : refresh токен в теле (native клиенты).
// Указатель отличает отсутствующее поле от пустой строки
type RefreshTokenRequest struct {
	RefreshToken *string `json:"refresh_token" example:"eyJhbGciOiJIUzUxMiIsInR5cCI6IkpXVCJ9..."`
}

// RefreshTokenResponse : новый access токен (в теле только для native клиентов)
type RefreshTokenResponse struct {
	Success     bool   `json:"success" example:"true"`
	AccessToken string `json:"access_token,omitempty" example:"eyJhbGciOiJIUzUxMiIsInR5cCI6IkpXVCJ9..."`
	ExpiresIn   int64  `json:"expires_in" example:"900"`
}

// MessageResponse : ответ без данных, например logout
type MessageResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Logged out successfully"`
}

// CSRFTokenResponse : токен для заголовка X-CSRF-Token
type CSRFTokenResponse struct {
	CSRFToken string `json:"csrf_token" example:"9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08"`
}

// CurrentUserResponse : информация о текущем пользователе
type CurrentUserResponse struct {
	ID        int64  `json:"id" example:"1"`
	Email     string `json:"email" example:"a@b.com"`
	Name      string `json:"name" example:"Alice"`
	TokenID   string `json:"token_id" example:"1b4e28ba-2fa1-11d2-883f-0016d3cca427"`
	ExpiresAt int64  `json:"expires_at" example:"1767225600"`
}
