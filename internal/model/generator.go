package model

// Rules are the composition rules shared by every generator endpoint.
// Pointer bools allow distinguishing between missing (nil -> default true) and explicit false.
type Rules struct {
	Length      int   `json:"length"`
	Lowercase   *bool `json:"lowercase"`
	Uppercase   *bool `json:"uppercase"`
	Numeric     *bool `json:"numeric"`
	Special     *bool `json:"special"`
	MinLength   int   `json:"min_length"`
	MaxLength   int   `json:"max_length"`
	MaxAttempts int   `json:"max_attempts"`
}

// GenerateRequest represents a single password generation request.
type GenerateRequest struct {
	Rules
	Hash bool `json:"hash"`
}

// GenerateResponse represents a generated password.
type GenerateResponse struct {
	Password string `json:"password"`
	Length   int    `json:"length"`
	Hash     string `json:"hash,omitempty"`
}

// BatchRequest asks for Count independently generated passwords.
type BatchRequest struct {
	Rules
	Count int  `json:"count"`
	Hash  bool `json:"hash"`
}

// BatchItem is one entry of a batch. Error is set instead of Password when that
// generation failed.
type BatchItem struct {
	Password string `json:"password,omitempty"`
	Hash     string `json:"hash,omitempty"`
	Error    string `json:"error,omitempty"`
}

// BatchResponse lists batch results in generation order.
type BatchResponse struct {
	Passwords []BatchItem `json:"passwords"`
	Failed    int         `json:"failed,omitempty"`
}

// ValidateRequest checks Password against Rules.
type ValidateRequest struct {
	Rules
	Password string `json:"password"`
}

// ValidateResponse reports which rules a password failed.
type ValidateResponse struct {
	Valid    bool     `json:"valid"`
	Length   int      `json:"length"`
	LengthOK bool     `json:"length_ok"`
	Missing  []string `json:"missing"`
}

// VerifyRequest checks Password against an Argon2id PHC Hash.
type VerifyRequest struct {
	Password string `json:"password"`
	Hash     string `json:"hash"`
}

// VerifyResponse reports whether the password matched.
type VerifyResponse struct {
	Match bool `json:"match"`
}
