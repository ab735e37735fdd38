package antivirus

import (
	"bufio"
	"context"
	"encoding/binary"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClamd answers a single INSTREAM session, replying FOUND when the payload contains "EICAR".
func fakeClamd(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func(conn net.Conn) {
				defer conn.Close()
				r := bufio.NewReader(conn)
				cmd, err := r.ReadString(0)
				if err != nil {
					return
				}
				if cmd == "zPING\x00" {
					conn.Write([]byte("PONG\x00"))
					return
				}
				var body strings.Builder
				size := make([]byte, 4)
				for {
					if _, err := io.ReadFull(r, size); err != nil {
						return
					}
					n := binary.BigEndian.Uint32(size)
					if n == 0 {
						break
					}
					chunk := make([]byte, n)
					if _, err := io.ReadFull(r, chunk); err != nil {
						return
					}
					body.Write(chunk)
				}
				if strings.Contains(body.String(), "EICAR") {
					conn.Write([]byte("stream: Eicar-Test-Signature FOUND\x00"))
					return
				}
				conn.Write([]byte("stream: OK\x00"))
			}(conn)
		}
	}()
	return ln.Addr().String()
}

func TestClamAVScanner(t *testing.T) {
	addr := fakeClamd(t)
	s := NewClamAVScanner(addr, 2*time.Second)
	ctx := context.Background()

	assert.True(t, s.Available(ctx))

	clean := s.Scan(ctx, "cv.pdf", []byte("%PDF-1.4 hello"))
	require.NoError(t, clean.Error)
	assert.False(t, clean.Infected)

	big := make([]byte, chunkSize*2+10)
	copy(big[chunkSize+5:], "EICAR")
	infected := s.Scan(ctx, "cv.pdf", big)
	require.NoError(t, infected.Error)
	assert.True(t, infected.Infected)
	assert.Equal(t, "Eicar-Test-Signature", infected.ThreatName)
}

func TestClamAVScanner_Unreachable(t *testing.T) {
	s := NewClamAVScanner("127.0.0.1:1", 200*time.Millisecond)
	res := s.Scan(context.Background(), "cv.pdf", []byte("%PDF"))
	assert.Error(t, res.Error)
	assert.False(t, s.Available(context.Background()))
}

func TestParseResponse(t *testing.T) {
	r := parseResponse(ScanResult{}, "stream: Some error ERROR\x00")
	assert.Error(t, r.Error)

	r = parseResponse(ScanResult{}, "stream: OK")
	assert.NoError(t, r.Error)
	assert.False(t, r.Infected)
}
