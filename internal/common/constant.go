package common

// AuthorizationHeader carries the bearer access token on authenticated
// requests.
const AuthorizationHeader = "Authorization"
