package localip

import (
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ipNet(cidr string) *net.IPNet {
	ip, n, err := net.ParseCIDR(cidr)
	if err != nil {
		panic(err)
	}
	n.IP = ip
	return n
}

func TestPick(t *testing.T) {
	addrs := []net.Addr{
		ipNet("127.0.0.1/8"),
		ipNet("fe80::1/64"),
		ipNet("169.254.3.4/16"),
		&net.TCPAddr{IP: net.ParseIP("10.9.9.9")},
		ipNet("192.168.1.20/24"),
		ipNet("10.0.0.5/8"),
	}
	ip, err := pick(addrs)
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.20", ip.String())
}

func TestPickNothingUsable(t *testing.T) {
	_, err := pick([]net.Addr{ipNet("127.0.0.1/8"), ipNet("::1/128")})
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = pick(nil)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestDiscoverReturnsIPv4(t *testing.T) {
	ip, err := Discover()
	if err != nil {
		t.Skipf("no network in this environment: %v", err)
	}
	assert.NotNil(t, ip.To4())
	assert.False(t, ip.IsLoopback())
}
