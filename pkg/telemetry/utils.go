// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package telemetry

import (
	"math/rand"
	"net"
	"time"
)

// jitter spreads reporting intervals so a fleet restarted together does
// not synchronize its sends.
func jitter(t time.Duration) time.Duration {
	nanos := rand.NormFloat64()*float64(t/4) + float64(t)
	if nanos <= 0 {
		nanos = 1
	}
	return time.Duration(nanos)
}

// DefaultInstanceID returns the first usable mac address, or "unknown".
func DefaultInstanceID() string {
	ifaces, err := net.Interfaces()
	if err != nil {
		return "unknown"
	}
	for _, iface := range ifaces {
		if iface.HardwareAddr != nil {
			return iface.HardwareAddr.String()
		}
	}
	return "unknown"
}
