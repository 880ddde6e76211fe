package models

type RegisterResponse struct {
	Msg string `json:"msg"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
