package jwtsign

import (
	"bytes"
	"crypto/x509"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
)

var pemPrefix = []byte("-----BEGIN")

// ParseES256Key reads an EC P-256 private key. It accepts PEM encoded PKCS#8
// (the .p8 files Apple hands out) or SEC1 keys, and the raw DER of either.
func ParseES256Key(data []byte) (jwk.Key, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, newError(ErrCodeInvalidKey, errors.New("key is empty"))
	}

	var (
		key jwk.Key
		err error
	)
	if bytes.HasPrefix(data, pemPrefix) {
		key, err = jwk.ParseKey(data, jwk.WithPEM(true))
	} else {
		key, err = parseDERKey(data)
	}
	if err != nil {
		return nil, newError(ErrCodeInvalidKey, err)
	}

	ecKey, ok := key.(jwk.ECDSAPrivateKey)
	if !ok {
		return nil, newError(ErrCodeInvalidKey, fmt.Errorf("expected EC private key, got %s", key.KeyType()))
	}
	if ecKey.Crv() != jwa.P256 {
		return nil, newError(ErrCodeInvalidKey, fmt.Errorf("expected curve %s, got %s", jwa.P256, ecKey.Crv()))
	}
	return ecKey, nil
}

func parseDERKey(der []byte) (jwk.Key, error) {
	if raw, err := x509.ParsePKCS8PrivateKey(der); err == nil {
		return jwk.FromRaw(raw)
	}
	raw, err := x509.ParseECPrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("parse der key: %w", err)
	}
	return jwk.FromRaw(raw)
}

// hmacKey returns the UTF-8 bytes of an HS256 secret.
func hmacKey(secret string) ([]byte, error) {
	if secret == "" {
		return nil, newError(ErrCodeInvalidKey, errors.New("secret is empty"))
	}
	if !utf8.ValidString(secret) {
		return nil, newError(ErrCodeInvalidInput, errors.New("secret is not valid UTF-8"))
	}
	return []byte(secret), nil
}
