package models

import "golang.org/x/oauth2"

type OAuthUser struct {
	Details string
	Tokens  *oauth2.Token
}

type SendEmailConfig struct {
	To             []string `json:"to,omitempty" validate:"required,gt=0,dive,required,email"`
	Subject        string   `json:"subject,omitempty" validate:"required,min=1,max=998"`
	Body           string   `json:"body,omitempty" validate:"required,min=1"`
	WithVerifyCode bool     `json:"with_verify_code,omitempty"`
}
