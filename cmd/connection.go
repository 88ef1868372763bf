// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 AeroAPI Project

package cmd

import (
	"bufio"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/term"

	"github.com/aeroapi/simbridge/pkg/fsuipc"
)

// upstreamDialer builds the gorilla dialer for the configured upstream
// URL: fsuipc subprotocol, handshake timeout, TLS settings for wss://.
func upstreamDialer() (*websocket.Dialer, error) {
	u, err := url.Parse(upstreamURL)
	if err != nil {
		return nil, fmt.Errorf("invalid upstream URL: %v", err)
	}
	switch u.Scheme {
	case "ws", "wss":
	default:
		return nil, fmt.Errorf("unsupported URL scheme: %s (use ws:// or wss://)", u.Scheme)
	}

	dialer := &websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
		Subprotocols:     []string{fsuipc.Subprotocol},
	}
	if u.Scheme == "wss" {
		dialer.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: wsNoSSLVerify,
		}
	}
	return dialer, nil
}

// upstreamHeader builds the HTTP headers for the upstream handshake,
// prompting for a password when a username is configured.
func upstreamHeader() (http.Header, error) {
	header := http.Header{}
	if wsUsername == "" {
		return header, nil
	}
	password, err := GetPassword()
	if err != nil {
		return nil, err
	}
	credentials := base64.StdEncoding.EncodeToString([]byte(wsUsername + ":" + password))
	header.Set("Authorization", "Basic "+credentials)
	return header, nil
}

// GetPassword retrieves the upstream password from the environment or
// prompts the user without echo.
func GetPassword() (string, error) {
	if pw := os.Getenv("SIMBRIDGE_PASSWORD"); pw != "" {
		return pw, nil
	}

	fmt.Fprint(os.Stderr, "Password: ")

	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		// Fallback to regular input if terminal functions fail
		reader := bufio.NewReader(os.Stdin)
		password, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("failed to read password: %v", err)
		}
		fmt.Fprintln(os.Stderr)
		return strings.TrimSpace(password), nil
	}

	fmt.Fprintln(os.Stderr)
	return string(passwordBytes), nil
}
