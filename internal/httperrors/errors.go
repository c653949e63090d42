// Copyright (c) 2025 Newsdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors explains transport failures when talking to the portal:
// timeouts, DNS, refused connections and TLS problems. Failures that carry an
// HTTP status are left to the caller.
package httperrors

import (
	"context"
	"errors"
	"io"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/pterm/pterm"
)

// Cause is the recognized class of a network failure.
type Cause int

const (
	Unknown Cause = iota
	Timeout
	DNS
	Refused
	TLS
)

// Classify returns the network cause of err, or Unknown.
func Classify(err error) Cause {
	switch {
	case err == nil:
		return Unknown
	case isTimeoutError(err):
		return Timeout
	case isDNSError(err):
		return DNS
	case isConnectionRefusedError(err):
		return Refused
	case isTLSError(err):
		return TLS
	}
	return Unknown
}

// Explain prints troubleshooting hints for err to w and reports whether err
// was a recognized network failure. action reads like "loading categories".
func Explain(w io.Writer, err error, action, apiURL string) bool {
	host := HostOf(apiURL)
	p := pterm.DefaultBasicText.WithWriter(w)

	switch Classify(err) {
	case Timeout:
		p.Printfln("Connection to %s timed out while %s.", host, action)
		p.Println("The portal took too long to respond. Check your connection or raise --timeout.")
	case DNS:
		p.Printfln("Cannot resolve %s while %s.", host, action)
		p.Println("Check the API URL (newsdesk config show) and your DNS settings.")
	case Refused:
		p.Printfln("Connection to %s refused while %s.", host, action)
		p.Println("Is the portal API running? Check the address and port.")
	case TLS:
		p.Printfln("Secure connection to %s failed while %s.", host, action)
		p.Println("Check the certificate, any HTTPS proxy, and the system clock.")
	default:
		return false
	}
	return true
}

func isTimeoutError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "timeout")
}

func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

func isConnectionRefusedError(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

func isTLSError(err error) bool {
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "tls") ||
		strings.Contains(s, "x509") ||
		strings.Contains(s, "certificate")
}

// HostOf returns the host of apiURL for messages, or "the portal".
func HostOf(apiURL string) string {
	u, err := url.Parse(apiURL)
	if err != nil || u.Host == "" {
		return "the portal"
	}
	return u.Host
}
