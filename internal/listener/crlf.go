package listener

import (
	"bytes"
	"io"
)

// crlfConn adapts a raw connection to the session layer's plain-\n world.
// Telnet clients send \r\n and expect it back; SSH clients without a PTY
// send a bare \r. Both collapse to \n on the way in, and every \n fans back
// out to \r\n on the way out.
type crlfConn struct {
	rw io.ReadWriter
}

func newCRLFReadWriter(rw io.ReadWriter) io.ReadWriter {
	return &crlfConn{rw: rw}
}

func (c *crlfConn) Read(p []byte) (int, error) {
	n, err := c.rw.Read(p)
	if n > 0 {
		normalized := bytes.ReplaceAll(p[:n], []byte("\r\n"), []byte("\n"))
		normalized = bytes.ReplaceAll(normalized, []byte("\r"), []byte("\n"))
		n = copy(p, normalized)
	}
	return n, err
}

func (c *crlfConn) Write(p []byte) (int, error) {
	_, err := c.rw.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n")))
	// Report the caller's length; the expansion is invisible to them.
	return len(p), err
}
