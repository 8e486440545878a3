package domain

import "strings"

type Session struct {
	AccessToken  string
	RefreshToken string
	BaseURL      string
}

func (s Session) IsAuthenticated() bool {
	return strings.TrimSpace(s.AccessToken) != ""
}

func (s Session) HasRefreshToken() bool {
	return strings.TrimSpace(s.RefreshToken) != ""
}

// Tokens is the credential pair returned by login and refresh calls.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type,omitempty"`
	ExpiresIn    int64  `json:"expires_in,omitempty"`
}
