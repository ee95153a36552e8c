package jwtsign

import (
	"errors"
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v2/jws"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"go.uber.org/zap"
)

// Request carries the inputs for one token. Key and KeyID are used by the
// ES256 audiences. AudienceWebinar signs with Secret and takes its issuer
// from the API key passed in Issuer.
type Request struct {
	Audience Audience
	Key      []byte
	KeyID    string
	Issuer   string
	Secret   string
}

// Issuer mints signed JWTs for the supported audiences.
// It holds no per-token state and is safe for concurrent use.
type Issuer struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewIssuer constructs an Issuer using the supplied config.
func NewIssuer(cfg Config) *Issuer {
	cfg.normalize()
	return &Issuer{logger: cfg.Logger, now: cfg.Now}
}

// StoreConnectToken returns an App Store Connect token valid for 20 minutes.
func (i *Issuer) StoreConnectToken(key []byte, keyID, issuer string) (string, error) {
	return i.Issue(Request{Audience: AudienceStoreConnect, Key: key, KeyID: keyID, Issuer: issuer})
}

// ServiceToken returns an AM service token valid for about six months.
func (i *Issuer) ServiceToken(key []byte, keyID, issuer string) (string, error) {
	return i.Issue(Request{Audience: AudienceService, Key: key, KeyID: keyID, Issuer: issuer})
}

// PushToken returns an APNs provider token. It carries no exp claim.
func (i *Issuer) PushToken(key []byte, keyID, issuer string) (string, error) {
	return i.Issue(Request{Audience: AudiencePush, Key: key, KeyID: keyID, Issuer: issuer})
}

// WebinarToken returns an HS256 token for the webinar platform API.
func (i *Issuer) WebinarToken(apiKey, secret string) (string, error) {
	return i.Issue(Request{Audience: AudienceWebinar, Issuer: apiKey, Secret: secret})
}

// Issue mints a token for req.Audience. Failures are logged and returned as *Error.
func (i *Issuer) Issue(req Request) (string, error) {
	token, _, err := i.issueWithClaims(req)
	return token, err
}

func (i *Issuer) issueWithClaims(req Request) (string, Claims, error) {
	token, claims, err := i.sign(req)
	if err != nil {
		i.logger.Error("jwt signing failed",
			zap.Stringer("audience", req.Audience),
			zap.String("code", string(errorCode(err))),
			zap.Error(err),
		)
		return "", Claims{}, err
	}
	return token, claims, nil
}

func (i *Issuer) sign(req Request) (string, Claims, error) {
	claims, err := NewClaims(req.Audience, req.Issuer, i.now())
	if err != nil {
		return "", Claims{}, err
	}

	var key any
	if req.Audience == AudienceWebinar {
		key, err = hmacKey(req.Secret)
	} else {
		key, err = ParseES256Key(req.Key)
	}
	if err != nil {
		return "", Claims{}, err
	}

	tok, err := claims.Token()
	if err != nil {
		return "", Claims{}, newError(ErrCodeInternal, err)
	}
	hdrs, err := headers(req.Audience, req.KeyID)
	if err != nil {
		return "", Claims{}, newError(ErrCodeInternal, fmt.Errorf("set headers: %w", err))
	}

	signed, err := jwt.Sign(tok, jwt.WithKey(req.Audience.algorithm(), key, jws.WithProtectedHeaders(hdrs)))
	if err != nil {
		return "", Claims{}, newError(ErrCodeSigningFailed, err)
	}
	return string(signed), claims, nil
}

func errorCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrCodeInternal
}
