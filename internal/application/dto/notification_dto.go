package dto

// SendOTPRequest cuerpo de /sendOtp.
type SendOTPRequest struct {
	Email string `json:"email"`
}

// VerifyOTPRequest cuerpo de /verifyOtp.
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// SendMailRequest cuerpo de /send-mail.
type SendMailRequest struct {
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	Text    string   `json:"text"`
}

// StatusResponse respuesta simple de éxito.
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
