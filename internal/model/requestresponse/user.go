package requestresponse

// RegisterRequest : тело запроса регистрации
type RegisterRequest struct {
	Email    string `json:"email" example:"a@b.com"`
	Password string `json:"password" example:"Secure123"`
	Name     string `json:"name" example:"Alice"`
}

// RegisterResponse : успешный ответ
type RegisterResponse struct {
	ID    int64  `json:"id" example:"1"`
	Email string `json:"email" example:"a@b.com"`
	Name  string `json:"name" example:"Alice"`
}

// ErrorDetail : детальная информация об ошибке
type ErrorDetail struct {
	Code int    `json:"code" example:"400"`
	Text string `json:"text" example:"Email and password are required"`
}

// ErrorResponse : стандартная структура ошибки
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// LiveResponse : процесс жив
type LiveResponse struct {
	Status string `json:"status" example:"ok"`
}

// ReadyResponse : готовность принимать трафик
type ReadyResponse struct {
	Status   string `json:"status" example:"ready"`
	Database string `json:"database" example:"ok"`
	Cache    string `json:"cache" example:"ok"`
}
