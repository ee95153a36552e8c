package jwtsign

import "time"

// Expiration is how long a minted token stays valid.
type Expiration time.Duration

const (
	// ExpirationShort is the App Store Connect maximum of 20 minutes.
	ExpirationShort = Expiration(1200 * time.Second)
	// ExpirationLong is roughly six months.
	ExpirationLong = Expiration(15777000 * time.Second)
	// ExpirationWebinar is the lifetime of webinar platform tokens.
	ExpirationWebinar = Expiration(7000000 * time.Second)
)

// Duration returns the policy as a time.Duration.
func (e Expiration) Duration() time.Duration {
	return time.Duration(e)
}

// Seconds returns the policy length in whole seconds.
func (e Expiration) Seconds() int64 {
	return int64(time.Duration(e) / time.Second)
}

// From returns the expiry instant for a token issued at now.
func (e Expiration) From(now time.Time) time.Time {
	return now.Add(time.Duration(e))
}
