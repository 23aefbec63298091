package accounts

import (
	"net/http"
	"time"
)

// Cookie names the transport uses for the two token side channels.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// SessionCookies builds the http-only cookie values the transport sets on a
// successful login or refresh. Lifetimes follow the token lifetimes.
func SessionCookies(pair TokenPair, cfg Config) []*http.Cookie {
	now := time.Now()
	return []*http.Cookie{
		{
			Name:     AccessTokenCookie,
			Value:    pair.AccessToken,
			Path:     "/",
			Expires:  now.Add(cfg.GetAccessTokenTTL()),
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteLaxMode,
		},
		{
			Name:     RefreshTokenCookie,
			Value:    pair.RefreshToken,
			Path:     "/",
			Expires:  now.Add(cfg.GetRefreshTokenTTL()),
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteLaxMode,
		},
	}
}

// ExpiredSessionCookies builds the clearing counterparts set on logout.
func ExpiredSessionCookies() []*http.Cookie {
	expired := time.Now().Add(-time.Hour * (24 * 365))
	cookies := make([]*http.Cookie, 0, 2)
	for _, name := range []string{AccessTokenCookie, RefreshTokenCookie} {
		cookies = append(cookies, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			Expires:  expired,
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return cookies
}
