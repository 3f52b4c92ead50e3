//go:build !darwin && !linux
// +build !darwin,!linux

package server

import (
	"errors"
	"net"
)

func listenConfig(reusePort bool) (net.ListenConfig, error) {
	if reusePort {
		return net.ListenConfig{}, errors.New("SO_REUSEPORT is not supported on this platform")
	}
	return net.ListenConfig{}, nil
}
