package auth

// TelegramUser is the identity asserted by a verified Mini App credential,
// not yet mapped to a local user record. Optional fields default to their
// zero values when the payload omits them.
type TelegramUser struct {
	Id           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	UserName     string `json:"username"`
	LanguageCode string `json:"language_code"`
	IsPremium    bool   `json:"is_premium"`
	PhotoUrl     string `json:"photo_url"`
}

// InitData is the result of a successful init data verification.
// Valid for the single request that produced it.
type InitData struct {
	User     TelegramUser
	AuthDate int64
	QueryId  string
	Hash     string

	// Data is the parsed field mapping with "hash" removed, exactly as it
	// entered the signature check. Kept for auditing and forwarding.
	Data map[string]string
}
