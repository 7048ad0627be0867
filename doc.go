// Package auth is the authentication core of the campus-event portal:
// credential verification and session-token issuance/validation for the
// routes the rest of the portal mounts.
//
// Flows:
//   - RegisterUserHandler validates a registration payload, checks user_id
//     and email uniqueness against the credential store, hashes the password
//     with bcrypt, and persists the new user.
//   - Authenticator verifies credentials and issues a signed 24 hour session
//     token. Unknown user ids and wrong passwords are indistinguishable to
//     callers.
//   - RequireAuth guards protected routes: it verifies the bearer token and
//     attaches an AuthenticatedIdentity to the request, or rejects with a
//     specific reason (no token, expired, malformed, misconfiguration).
//
// Tokens are HS256 JWTs signed with a process-wide secret that is validated
// at startup via Config.Validate. There is no server-side revocation: a
// token stays valid until it expires, which is the accepted exposure window
// for the portal.
package auth
