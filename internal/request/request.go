package request

import (
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/unicode"

	"qrport/internal/headers"
	"qrport/internal/httperr"
)

// DefaultBufferSize bounds the single read a request is parsed from.
const DefaultBufferSize = 4096

const headBodySeparator = "\r\n\r\n"

// Request is built from exactly one read on its connection. Anything the
// client sent past that read is never seen, so Body may be truncated.
type Request struct {
	Method  string
	Path    string
	Headers headers.Headers
	Body    string

	// Logger is scoped to this connection. It is a no-op unless the server
	// sets it.
	Logger zerolog.Logger

	conn   net.Conn
	closed bool
}

// Parse reads up to DefaultBufferSize bytes from conn and parses them.
func Parse(conn net.Conn) (*Request, error) {
	return ParseBuffer(conn, DefaultBufferSize)
}

// ParseBuffer is Parse with a caller-chosen read size. On success the
// Request owns conn; on failure the caller still does.
func ParseBuffer(conn net.Conn, size int) (*Request, error) {
	if size <= 0 {
		size = DefaultBufferSize
	}
	buf := make([]byte, size)
	n, err := conn.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, httperr.Wrap(err, "read")
	}

	r, err := parseText(decodeLossy(buf[:n]))
	if err != nil {
		return nil, err
	}
	r.conn = conn
	return r, nil
}

func parseText(text string) (*Request, error) {
	head, body, found := strings.Cut(text, headBodySeparator)
	if !found {
		return nil, httperr.New(httperr.NoBody, "")
	}

	lines := strings.Split(head, "\r\n")
	requestLine := lines[0]
	if requestLine == "" {
		return nil, httperr.New(httperr.NoProtocol, "")
	}

	// method, target and version; the version is not checked
	parts := strings.Split(requestLine, " ")
	if len(parts) < 3 {
		return nil, httperr.New(httperr.InvalidProtocol, requestLine)
	}

	h := headers.NewHeaders()
	if err := h.Parse(lines[1:]); err != nil {
		return nil, err
	}

	return &Request{
		Method:  parts[0],
		Path:    parts[1],
		Headers: h,
		Body:    body,
		Logger:  zerolog.Nop(),
	}, nil
}

// decodeLossy turns data into text, replacing each invalid UTF-8 sequence
// with U+FFFD.
func decodeLossy(data []byte) string {
	decoded, err := unicode.UTF8.NewDecoder().Bytes(data)
	if err != nil {
		return strings.ToValidUTF8(string(data), "\uFFFD")
	}
	return string(decoded)
}

// Close closes the underlying connection. Later writes and PeerAddr fail.
func (r *Request) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if r.conn == nil {
		return nil
	}
	return r.conn.Close()
}

func PrintRequest(w io.Writer, r *Request) {
	fmt.Fprintln(w, "Request line:")
	fmt.Fprintln(w, "- Method: "+r.Method)
	fmt.Fprintln(w, "- Target: "+r.Path)
	fmt.Fprintln(w, "Headers:")
	for _, key := range r.Headers.Keys() {
		fmt.Fprintf(w, "- %s: %s\n", key, r.Headers[key])
	}
	fmt.Fprintln(w, "Body:")
	fmt.Fprintln(w, r.Body)
}
