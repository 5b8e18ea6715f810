package auth

type ClaimsData struct {
	TerminalID   string
	TerminalName string
	FleetID      *string
	ExpiresAt    int64
	IssuedAt     int64
	UserAgent    string
	DeviceID     string
	Intent       string
	TokenType    string
}

type InterserviceClaimsData struct {
	Origination string
	ExpiresAt   int64
	IssuedAt    int64
}
