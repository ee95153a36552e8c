package jwtsign

import (
	"fmt"
	"strings"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jws"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// StoreConnectAudience is the fixed aud claim of App Store Connect tokens.
const StoreConnectAudience = "appstoreconnect-v1"

// Audience selects the third-party API a token is minted for.
type Audience int

const (
	AudienceStoreConnect Audience = iota + 1
	AudienceService
	AudiencePush
	AudienceWebinar
)

var audienceNames = map[Audience]string{
	AudienceStoreConnect: "asc",
	AudienceService:      "am",
	AudiencePush:         "apns",
	AudienceWebinar:      "zoom",
}

func (a Audience) String() string {
	if name, ok := audienceNames[a]; ok {
		return name
	}
	return fmt.Sprintf("audience(%d)", int(a))
}

// ParseAudience maps a short audience name ("asc", "am", "apns", "zoom") to its Audience.
func ParseAudience(name string) (Audience, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for aud, n := range audienceNames {
		if n == want {
			return aud, nil
		}
	}
	return 0, newError(ErrCodeInvalidInput, fmt.Errorf("unknown audience %q", name))
}

// algorithm returns the signature algorithm used for the audience.
func (a Audience) algorithm() jwa.SignatureAlgorithm {
	if a == AudienceWebinar {
		return jwa.HS256
	}
	return jwa.ES256
}

// Claims is the payload of a minted token. A zero IssuedAt or ExpiresAt
// means the claim is left out of the payload.
type Claims struct {
	Audience  Audience
	Issuer    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// NewClaims builds the claims set for the audience at the given instant.
// now is floored to whole seconds so iat and exp share one base.
func NewClaims(aud Audience, issuer string, now time.Time) (Claims, error) {
	now = now.Truncate(time.Second)
	c := Claims{Audience: aud, Issuer: issuer}
	switch aud {
	case AudienceStoreConnect:
		c.ExpiresAt = ExpirationShort.From(now)
	case AudienceService:
		c.IssuedAt = now
		c.ExpiresAt = ExpirationLong.From(now)
	case AudiencePush:
		c.IssuedAt = now
	case AudienceWebinar:
		c.ExpiresAt = ExpirationWebinar.From(now)
	default:
		return Claims{}, newError(ErrCodeInvalidInput, fmt.Errorf("unknown audience %d", int(aud)))
	}
	return c, nil
}

// Token converts the claims into a jwx token ready for signing.
func (c Claims) Token() (jwt.Token, error) {
	builder := jwt.NewBuilder().Issuer(c.Issuer)
	if c.Audience == AudienceStoreConnect {
		builder = builder.Audience([]string{StoreConnectAudience})
	}
	if !c.IssuedAt.IsZero() {
		builder = builder.IssuedAt(c.IssuedAt)
	}
	if !c.ExpiresAt.IsZero() {
		builder = builder.Expiration(c.ExpiresAt)
	}
	tok, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("build claims: %w", err)
	}
	// aud is a single string in the App Store Connect examples, not an array.
	tok.Options().Enable(jwt.FlattenAudience)
	return tok, nil
}

// headers returns the protected header fields for the audience.
func headers(aud Audience, keyID string) (jws.Headers, error) {
	hdrs := jws.NewHeaders()
	if aud != AudiencePush {
		if err := hdrs.Set(jws.TypeKey, "JWT"); err != nil {
			return nil, err
		}
	}
	if aud != AudienceWebinar {
		if err := hdrs.Set(jws.KeyIDKey, keyID); err != nil {
			return nil, err
		}
	}
	return hdrs, nil
}
