package ctl

import (
	"fmt"
	"net"
	"os"
)

// NotifyReady tells systemd the daemon is up. A no-op outside a
// Type=notify unit (NOTIFY_SOCKET unset).
func NotifyReady() error {
	path := os.Getenv("NOTIFY_SOCKET")
	if path == "" {
		return nil
	}

	addr := &net.UnixAddr{Name: path, Net: "unixgram"}
	conn, err := net.DialUnix(addr.Net, nil, addr)
	if err != nil {
		return fmt.Errorf("open notify socket %q: %w", path, err)
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("READY=1")); err != nil {
		return fmt.Errorf("send notify: %w", err)
	}
	return nil
}
