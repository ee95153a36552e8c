// Package jwtsign mints signed JWTs for a fixed set of third-party APIs.
//
// Four audiences are supported:
//
//   - App Store Connect: ES256, kid + typ headers, iss/exp/aud, 20 minute lifetime.
//   - AM services: ES256, kid + typ headers, iss/iat/exp, about six months.
//   - APNs: ES256, kid header, iss/iat and no exp.
//   - Webinar platform: HS256 keyed by the API secret, iss/exp, 7,000,000 seconds.
//
// Serialization and signing are done by github.com/lestrrat-go/jwx/v2.
package jwtsign
