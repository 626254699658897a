package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StatusResponse respuesta mínima para acciones sin cuerpo propio.
type StatusResponse struct {
	Status string `json:"status"`
}

// DateLayout formato de fechas en la API (YYYY-MM-DD).
const DateLayout = "2006-01-02"
