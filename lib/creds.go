package lib

import "time"

// SessionCredentials is one set of temporary credentials minted by STS for an
// assumed role. A value is never mutated after it is created; renewal swaps in
// a whole new value.
type SessionCredentials struct {
	AccessKeyID string

	SecretAccessKey string

	SessionToken string

	// Expiration is the hard expiry reported by STS. Sessions are renewed
	// RenewalWindow before this.
	Expiration time.Time
}
