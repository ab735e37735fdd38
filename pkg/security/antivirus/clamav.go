package antivirus

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"net"
	"strings"
	"time"
)

// chunkSize bounds each INSTREAM chunk; clamd's StreamMaxLength still applies to the total.
const chunkSize = 64 * 1024

// ClamAVScanner talks to a clamd daemon over TCP or a Unix socket.
type ClamAVScanner struct {
	address string        // "localhost:3310" or "/var/run/clamav/clamd.sock"
	timeout time.Duration // connection and scan timeout
}

var _ Scanner = (*ClamAVScanner)(nil)

func NewClamAVScanner(address string, timeout time.Duration) *ClamAVScanner {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ClamAVScanner{address: address, timeout: timeout}
}

func (c *ClamAVScanner) Name() string { return "clamav" }

func (c *ClamAVScanner) dial(ctx context.Context, timeout time.Duration) (net.Conn, error) {
	network := "tcp"
	if strings.HasPrefix(c.address, "/") {
		network = "unix"
	}
	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, network, c.address)
	if err != nil {
		return nil, err
	}
	deadline := time.Now().Add(timeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(deadline) {
		deadline = dl
	}
	_ = conn.SetDeadline(deadline)
	return conn, nil
}

// Available sends PING and expects PONG.
func (c *ClamAVScanner) Available(ctx context.Context) bool {
	conn, err := c.dial(ctx, 5*time.Second)
	if err != nil {
		return false
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("zPING\x00")); err != nil {
		return false
	}
	reply, err := bufio.NewReader(conn).ReadString(0)
	if err != nil && reply == "" {
		return false
	}
	return strings.HasPrefix(reply, "PONG")
}

// Scan streams data with zINSTREAM.
func (c *ClamAVScanner) Scan(ctx context.Context, filename string, data []byte) ScanResult {
	result := ScanResult{ScannerName: c.Name()}

	conn, err := c.dial(ctx, c.timeout)
	if err != nil {
		result.Error = fmt.Errorf("connect to clamd: %w", err)
		return result
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("zINSTREAM\x00")); err != nil {
		result.Error = fmt.Errorf("send command: %w", err)
		return result
	}

	size := make([]byte, 4)
	for off := 0; off < len(data); off += chunkSize {
		end := min(off+chunkSize, len(data))
		binary.BigEndian.PutUint32(size, uint32(end-off))
		if _, err := conn.Write(size); err != nil {
			result.Error = fmt.Errorf("send chunk size: %w", err)
			return result
		}
		if _, err := conn.Write(data[off:end]); err != nil {
			result.Error = fmt.Errorf("send chunk: %w", err)
			return result
		}
	}
	if _, err := conn.Write([]byte{0, 0, 0, 0}); err != nil {
		result.Error = fmt.Errorf("send end marker: %w", err)
		return result
	}

	reply, err := bufio.NewReader(conn).ReadString(0)
	if err != nil && reply == "" {
		result.Error = fmt.Errorf("read response: %w", err)
		return result
	}
	return parseResponse(result, reply)
}

// parseResponse interprets "stream: OK", "stream: <name> FOUND" and "... ERROR".
func parseResponse(result ScanResult, reply string) ScanResult {
	reply = strings.TrimSpace(strings.TrimRight(reply, "\x00"))

	switch {
	case strings.HasSuffix(reply, "FOUND"):
		result.Infected = true
		if _, threat, ok := strings.Cut(reply, ":"); ok {
			result.ThreatName = strings.TrimSuffix(strings.TrimSpace(threat), " FOUND")
		}
	case strings.HasSuffix(reply, "ERROR"):
		result.Error = fmt.Errorf("scan error: %s", reply)
	case strings.HasSuffix(reply, "OK"):
	default:
		result.Error = fmt.Errorf("unexpected clamd response: %q", reply)
	}
	return result
}
