package ip

import (
	"encoding/hex"
	"net"
	"runtime"
)

// localIPv4 returns the first non-loopback ipv4 address of the host.
func localIPv4() net.IP {
	if runtime.GOOS == "windows" {
		return nil
	}
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return nil
	}
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() {
			continue
		}
		if v4 := ipNet.IP.To4(); v4 != nil {
			return v4
		}
	}
	return nil
}

// IPv4 is the dotted host address, empty when unknown.
func IPv4() string {
	if v4 := localIPv4(); v4 != nil {
		return v4.String()
	}
	return ""
}

// IPv4Hex is the host address as 8 hex digits, all zero when unknown.
func IPv4Hex() string {
	if v4 := localIPv4(); v4 != nil {
		return hex.EncodeToString(v4)
	}
	return "00000000"
}
