package response

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qrport/internal/headers"
)

// recordingWriter keeps every Write call separately.
type recordingWriter struct {
	writes [][]byte
}

func (r *recordingWriter) Write(p []byte) (int, error) {
	r.writes = append(r.writes, append([]byte(nil), p...))
	return len(p), nil
}

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	return len(p) - 1, nil
}

type failingWriter struct{ err error }

func (f failingWriter) Write([]byte) (int, error) {
	return 0, f.err
}

func TestWriteOK(t *testing.T) {
	buf := &bytes.Buffer{}
	payload := []byte{0x00, 0xff, '\r', '\n', 'x'}
	err := NewWriter(buf).WriteOK(payload)
	require.NoError(t, err)

	expected := append([]byte("HTTP/1.1 200 OK\r\nContent-Type: application/octet-stream\r\n\r\n"), payload...)
	assert.Equal(t, expected, buf.Bytes())
}

func TestWriteOKEmptyPayload(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, NewWriter(buf).WriteOK(nil))
	assert.Equal(t, "HTTP/1.1 200 OK\r\nContent-Type: application/octet-stream\r\n\r\n", buf.String())
}

func TestWriteOKSeparatesHeadAndPayload(t *testing.T) {
	rec := &recordingWriter{}
	require.NoError(t, NewWriter(rec).WriteOK([]byte("HELLO")))
	require.GreaterOrEqual(t, len(rec.writes), 2)
	assert.Equal(t, []byte("HELLO"), rec.writes[len(rec.writes)-1])
}

// The 404 frame has no blank line between head and body. This pins the
// current bytes; changing them is a protocol change, not a cleanup.
func TestWriteNotFoundKnownMalformedFraming(t *testing.T) {
	buf := &bytes.Buffer{}
	err := NewWriter(buf).WriteNotFound("no such file")
	require.NoError(t, err)
	assert.Equal(t, "HTTP/1.1 404 Not Found\r\n\rno such file", buf.String())
	assert.NotContains(t, buf.String(), "\r\n\r\n")
}

func TestWriteStatusLine(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, WriteStatusLine(buf, StatusOK))
	assert.Equal(t, "HTTP/1.1 200 OK\r\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteStatusLine(buf, StatusCode(418)))
	assert.Equal(t, "HTTP/1.1 418 \r\n", buf.String())
}

func TestWriteHeadersSorted(t *testing.T) {
	buf := &bytes.Buffer{}
	err := WriteHeaders(buf, headers.Headers{"X-B": "2", "Content-Type": "text/plain", "X-A": "1"})
	require.NoError(t, err)
	assert.Equal(t, "Content-Type: text/plain\r\nX-A: 1\r\nX-B: 2\r\n\r\n", buf.String())
}

func TestWriterEnforcesOrder(t *testing.T) {
	w := NewWriter(io.Discard)
	_, err := w.WriteBody([]byte("early"))
	require.Error(t, err)

	err = w.WriteHeaders(headers.NewHeaders())
	require.Error(t, err)

	require.NoError(t, w.WriteStatusLine(StatusOK))
	require.Error(t, w.WriteStatusLine(StatusOK))
}

func TestShortWriteSurfaces(t *testing.T) {
	err := NewWriter(shortWriter{}).WriteOK([]byte("payload"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, io.ErrShortWrite))
}

func TestWriteErrorSurfaces(t *testing.T) {
	boom := errors.New("broken pipe")
	err := NewWriter(failingWriter{err: boom}).WriteNotFound("gone")
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
}
