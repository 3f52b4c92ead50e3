package request

import (
	"errors"
	"net"
	"os"
	"strings"

	"qrport/internal/httperr"
	"qrport/internal/response"
)

var errHomeUnset = errors.New("HOME is not set")

// SendBytes answers 200 with payload as an octet stream.
func (r *Request) SendBytes(payload []byte) error {
	if err := r.writable(); err != nil {
		return err
	}
	return httperr.Wrap(response.NewWriter(r.conn).WriteOK(payload), "write")
}

// SendFile answers 200 with the whole content of the file at path. Nothing
// is written when the file cannot be resolved or read, so the caller can
// still answer with something else.
func (r *Request) SendFile(path string) error {
	resolved, err := ExpandHome(path)
	if err != nil {
		return err
	}
	content, err := os.ReadFile(resolved)
	if err != nil {
		return httperr.Wrap(err, "read file")
	}
	return r.SendBytes(content)
}

// NotFound answers 404 with msg as the body. See response.Writer.WriteNotFound
// for the framing.
func (r *Request) NotFound(msg string) error {
	if err := r.writable(); err != nil {
		return err
	}
	return httperr.Wrap(response.NewWriter(r.conn).WriteNotFound(msg), "write")
}

// PeerAddr returns the remote address of the connection.
func (r *Request) PeerAddr() (net.Addr, error) {
	if err := r.writable(); err != nil {
		return nil, err
	}
	addr := r.conn.RemoteAddr()
	if addr == nil {
		return nil, httperr.Wrap(net.ErrClosed, "peer address")
	}
	return addr, nil
}

func (r *Request) writable() error {
	if r.closed || r.conn == nil {
		return httperr.Wrap(net.ErrClosed, "connection")
	}
	return nil
}

// ExpandHome replaces a leading "~" with $HOME. The rest of the path is
// appended as-is, so "~/a" and "~a" both keep their remainder verbatim.
func ExpandHome(path string) (string, error) {
	rest, ok := strings.CutPrefix(path, "~")
	if !ok {
		return path, nil
	}
	home, ok := os.LookupEnv("HOME")
	if !ok {
		return "", httperr.Wrap(errHomeUnset, "expand home")
	}
	return home + rest, nil
}
