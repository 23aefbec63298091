// Package accounts provides the user-account core for the platform:
// registration, credential verification, access/refresh token issuance and
// rotation, and channel profile aggregation over the subscription graph.
//
// Session model:
//   - Every user carries at most one active refresh token, persisted on the
//     user record via Bun. Login overwrites it, logout clears it, and Refresh
//     rotates it. A presented refresh token is only honored while it equals
//     the stored value, so a superseded or cleared token fails the equality
//     check even with a valid signature. There is no token blacklist; the
//     stored value is the revocation mechanism.
//   - Concurrent logins for the same user race on the stored token with
//     last-writer-wins semantics. The earlier session simply stops
//     refreshing, which is the intended single-active-session behavior.
//
// The HTTP transport, response envelopes, and media pipeline live in the
// embedding application. SessionManager and ChannelProfiles return sanitized
// records and structured errors (go-errors categories plus text codes) for
// the transport to map onto status codes; SessionCookies and
// ExpiredSessionCookies produce the http-only cookie values set on login and
// cleared on logout.
package accounts
