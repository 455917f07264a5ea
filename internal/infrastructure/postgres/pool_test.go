package postgres

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstIPv4(t *testing.T) {
	ip, ok := firstIPv4([]net.IP{net.ParseIP("2001:db8::1"), net.ParseIP("10.0.0.7")})
	assert.True(t, ok)
	assert.Equal(t, "10.0.0.7", ip)

	_, ok = firstIPv4([]net.IP{net.ParseIP("::1")})
	assert.False(t, ok)

	_, ok = firstIPv4(nil)
	assert.False(t, ok)
}
