// Package transport provides the HTTP transport used for upstream
// Storefront API calls.
//
// Shopify storefronts sit behind a CDN that applies JA3-based bot detection,
// and Go's standard TLS client has a distinctive fingerprint that can trip
// aggressive rate limiting there. This transport uses uTLS to present a
// Chrome-like TLS fingerprint, with ALPN negotiating h2 or http/1.1 as the
// server supports and Go's http2.Transport doing the HTTP/2 framing.
package transport

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"time"

	utls "github.com/refraction-networking/utls"
	"golang.org/x/net/http2"
)

// NewChromeTransport creates an http.RoundTripper presenting Chrome's TLS
// fingerprint to upstream servers. Supports both HTTP/2 and HTTP/1.1 based
// on ALPN negotiation.
func NewChromeTransport(timeout time.Duration) http.RoundTripper {
	dialer := &net.Dialer{Timeout: timeout}

	h2Transport := &http2.Transport{
		DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
			return dialChromeTLS(ctx, dialer, network, addr)
		},
	}

	h1Transport := &http.Transport{
		DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			return dialChromeTLS(ctx, dialer, network, addr)
		},
		ForceAttemptHTTP2: false,
	}

	return &chromeTransport{
		h2: h2Transport,
		h1: h1Transport,
	}
}

// chromeTransport wraps HTTP/2 and HTTP/1.1 transports with Chrome TLS fingerprint.
type chromeTransport struct {
	h2 *http2.Transport
	h1 *http.Transport
}

// RoundTrip implements http.RoundTripper.
// Tries HTTP/2 first, falls back to HTTP/1.1 if the server doesn't support h2.
func (t *chromeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.h2.RoundTrip(req)
	if err == nil {
		return resp, nil
	}
	return t.h1.RoundTrip(req)
}

// dialChromeTLS establishes a TLS connection with Chrome's fingerprint.
func dialChromeTLS(ctx context.Context, dialer *net.Dialer, network, addr string) (net.Conn, error) {
	// Extract hostname for SNI
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}

	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}

	tlsConfig := &utls.Config{
		ServerName: host,
	}
	tlsConn := utls.UClient(conn, tlsConfig, utls.HelloChrome_Auto)

	if err := tlsConn.Handshake(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("tls handshake: %w", err)
	}

	return tlsConn, nil
}
