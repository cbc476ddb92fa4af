// Package common contains shared constants and sentinel errors used across
// the console components.
package common

const (
	// AuthorizationHeaderName carries the bearer credential on outbound requests.
	AuthorizationHeaderName = "Authorization"

	// RequestIDHeaderName carries a per-request correlation id.
	RequestIDHeaderName = "X-Request-ID"

	// AccessTokenKey is the fixed metadata key the credential is persisted under.
	AccessTokenKey = "access_token"

	// OperatorEmailKey is the metadata key holding the email used at login.
	OperatorEmailKey = "operator_email"

	// StatusAll is the status filter value that matches every record.
	StatusAll = "all"
)
