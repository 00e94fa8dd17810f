package providers

import "net/http"

// ISecurityProvider defines API security provider.
type ISecurityProvider interface {
	IsEnabled() bool
	Authorize(headers http.Header) (username string, err error)
}
