package websocket

import (
	"net/http"
	"time"

	gorilla "github.com/gorilla/websocket"
)

const defaultHandshakeTimeout = 10 * time.Second

type options struct {
	handshakeTimeout time.Duration
	header           http.Header
	dialer           *gorilla.Dialer
	upgrader         gorilla.Upgrader
}

func defaultOptions() options {
	return options{
		handshakeTimeout: defaultHandshakeTimeout,
		dialer:           gorilla.DefaultDialer,
	}
}

type Option func(*options)

// WithHandshakeTimeout bounds the wait for the device's hello frame. A
// shorter context deadline wins.
func WithHandshakeTimeout(timeout time.Duration) Option {
	return func(o *options) {
		if timeout > 0 {
			o.handshakeTimeout = timeout
		}
	}
}

// WithHeader sets the request headers sent by Dial.
func WithHeader(header http.Header) Option {
	return func(o *options) {
		o.header = header
	}
}

func WithDialer(dialer *gorilla.Dialer) Option {
	return func(o *options) {
		if dialer != nil {
			o.dialer = dialer
		}
	}
}

// WithCheckOrigin replaces the origin check used by Accept. By default only
// same-origin requests are upgraded.
func WithCheckOrigin(check func(r *http.Request) bool) Option {
	return func(o *options) {
		o.upgrader.CheckOrigin = check
	}
}
