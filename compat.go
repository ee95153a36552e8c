package jwtsign

// The Issue* helpers below keep the result-or-absent contract: on failure the
// error is logged through DefaultLogger() and the caller only sees ok == false.
// Use an *Issuer directly to get the typed error.

// IssueStoreConnectToken mints an App Store Connect token.
func IssueStoreConnectToken(key []byte, keyID, issuer string) (string, bool) {
	return orAbsent(NewIssuer(Config{}).StoreConnectToken(key, keyID, issuer))
}

// IssueServiceToken mints an AM service token.
func IssueServiceToken(key []byte, keyID, issuer string) (string, bool) {
	return orAbsent(NewIssuer(Config{}).ServiceToken(key, keyID, issuer))
}

// IssuePushToken mints an APNs provider token.
func IssuePushToken(key []byte, keyID, issuer string) (string, bool) {
	return orAbsent(NewIssuer(Config{}).PushToken(key, keyID, issuer))
}

// IssueWebinarToken mints a webinar platform token.
func IssueWebinarToken(apiKey, secret string) (string, bool) {
	return orAbsent(NewIssuer(Config{}).WebinarToken(apiKey, secret))
}

func orAbsent(token string, err error) (string, bool) {
	if err != nil {
		return "", false
	}
	return token, true
}
