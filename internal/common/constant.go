package common

// SessionCookieName is the cookie (and gRPC metadata key) carrying the
// session token. Issuer, gate and client must agree on it.
const SessionCookieName = "token"

// InvalidTokenMessage is the fixed body returned for every rejected token.
const InvalidTokenMessage = "Invalid or missing token"
