package common

const (
	// AuthorizationHeaderName is the HTTP header carrying the access token
	// on requests from clients.
	AuthorizationHeaderName = "Authorization"

	// BearerScheme prefixes the token value in the Authorization header.
	BearerScheme = "Bearer"

	// TokenType is the token_type value returned by the login endpoint.
	TokenType = "bearer"
)
