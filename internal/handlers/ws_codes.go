package handlers

// Custom WebSocket close codes for the arena gateway. They give clients a
// more specific close reason than the standard code set.
const (
	BadSubprotocolError   = 3000 // unsupported subprotocol on connect
	InvalidAuthTokenError = 3001 // token missing, invalid, or expired
	InvalidUserIDError    = 3002 // user id malformed or not matching the token
	InvalidMessageError   = 3003 // payload failed validation
)
