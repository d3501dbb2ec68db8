package ip

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIPv4(t *testing.T) {
	h := IPv4Hex()
	assert.Len(t, h, 8)

	if addr := IPv4(); addr != "" {
		assert.NotNil(t, net.ParseIP(addr).To4())
	} else {
		assert.Equal(t, "00000000", h)
	}
}
