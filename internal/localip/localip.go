// Package localip finds the address other hosts on the LAN can reach us at.
package localip

import (
	"errors"
	"net"
)

// ErrNotFound is returned when no usable IPv4 address exists.
var ErrNotFound = errors.New("no non-loopback IPv4 address found")

// probeAddr is only used to pick a route; dialing UDP sends nothing.
const probeAddr = "192.0.2.1:9"

// Discover returns the IPv4 address of the interface holding the default
// route, or the first non-loopback IPv4 interface address if there is none.
func Discover() (net.IP, error) {
	if ip, err := outboundIP(); err == nil {
		return ip, nil
	}
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return nil, err
	}
	return pick(addrs)
}

func outboundIP() (net.IP, error) {
	conn, err := net.Dial("udp4", probeAddr)
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok || addr.IP.IsLoopback() || addr.IP.IsUnspecified() {
		return nil, ErrNotFound
	}
	return addr.IP.To4(), nil
}

func pick(addrs []net.Addr) (net.IP, error) {
	for _, a := range addrs {
		ipnet, ok := a.(*net.IPNet)
		if !ok {
			continue
		}
		ip := ipnet.IP.To4()
		if ip == nil || ip.IsLoopback() || ip.IsLinkLocalUnicast() {
			continue
		}
		return ip, nil
	}
	return nil, ErrNotFound
}
