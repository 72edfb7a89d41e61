package models

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Admin is the only principal of the site; tokens carry its session id.
type Admin struct {
	SessionID string
}
