package jwtsign

import (
	"time"

	"golang.org/x/oauth2"
)

// PushTokenRefresh is how long a push token is handed out before a new one
// is minted. APNs rejects provider tokens older than one hour.
const PushTokenRefresh = time.Hour

// TokenSource adapts an Issuer to oauth2.TokenSource so minted tokens can be
// attached as bearer credentials by oauth2.NewClient.
// Every Token call mints a fresh JWT; wrap it with oauth2.ReuseTokenSource
// to reuse one until it nears expiry.
type TokenSource struct {
	issuer *Issuer
	req    Request
}

var _ oauth2.TokenSource = (*TokenSource)(nil)

// NewTokenSource returns a TokenSource minting tokens for req.
func NewTokenSource(issuer *Issuer, req Request) *TokenSource {
	return &TokenSource{issuer: issuer, req: cloneRequest(req)}
}

// Token mints a new JWT. Expiry mirrors the exp claim. Push tokens have no
// exp claim, so their Expiry is iat plus PushTokenRefresh; without it
// oauth2.ReuseTokenSource would keep one push token forever.
func (s *TokenSource) Token() (*oauth2.Token, error) {
	token, claims, err := s.issuer.issueWithClaims(s.req)
	if err != nil {
		return nil, err
	}
	expiry := claims.ExpiresAt
	if expiry.IsZero() && !claims.IssuedAt.IsZero() {
		expiry = claims.IssuedAt.Add(PushTokenRefresh)
	}
	return &oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
		Expiry:      expiry,
	}, nil
}

func cloneRequest(in Request) Request {
	out := in
	if len(in.Key) > 0 {
		out.Key = append([]byte(nil), in.Key...)
	}
	return out
}
