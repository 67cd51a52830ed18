package httpx

import "context"

// StaticTokenAuthenticator satisfies the authenticator interface with a
// fixed token, for APIs authenticated by a long-lived key.
type StaticTokenAuthenticator struct {
	token string
}

func NewStaticTokenAuthenticator(token string) StaticTokenAuthenticator {
	return StaticTokenAuthenticator{token: token}
}

func (a StaticTokenAuthenticator) Authenticate(context.Context) error {
	return nil
}

func (a StaticTokenAuthenticator) BearerToken() string {
	return a.token
}
