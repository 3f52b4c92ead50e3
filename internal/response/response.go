package response

import (
	"fmt"
	"io"

	"qrport/internal/headers"
)

type StatusCode int

const (
	StatusOK       StatusCode = 200
	StatusNotFound StatusCode = 404
)

const ContentTypeOctetStream = "application/octet-stream"

var reasonPhrases = map[StatusCode]string{
	StatusOK:       "OK",
	StatusNotFound: "Not Found",
}

const (
	writerStateStatusLine = iota
	writerStateHeaders
	writerStateBody
)

// Writer emits one response onto a connection. Each call maps to at least
// one Write on the underlying writer; nothing is buffered.
type Writer struct {
	w     io.Writer
	state int
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, state: writerStateStatusLine}
}

func (w *Writer) Write(p []byte) (int, error) {
	return w.w.Write(p)
}

func (w *Writer) WriteStatusLine(statusCode StatusCode) error {
	if w.state != writerStateStatusLine {
		return fmt.Errorf("status line already written")
	}
	if err := WriteStatusLine(w.w, statusCode); err != nil {
		return err
	}
	w.state = writerStateHeaders
	return nil
}

func (w *Writer) WriteHeaders(h headers.Headers) error {
	if w.state != writerStateHeaders {
		return fmt.Errorf("headers must follow the status line")
	}
	if err := WriteHeaders(w.w, h); err != nil {
		return err
	}
	w.state = writerStateBody
	return nil
}

func (w *Writer) WriteBody(p []byte) (int, error) {
	if w.state != writerStateBody {
		return 0, fmt.Errorf("body must follow the headers")
	}
	return writeFull(w.w, p)
}

// WriteOK sends the 200 preamble with an octet-stream content type, then
// payload as a separate write.
func (w *Writer) WriteOK(payload []byte) error {
	if err := w.WriteStatusLine(StatusOK); err != nil {
		return err
	}
	if err := w.WriteHeaders(headers.Headers{"Content-Type": ContentTypeOctetStream}); err != nil {
		return err
	}
	_, err := w.WriteBody(payload)
	return err
}

// WriteNotFound sends the 404 status line followed by a lone CR and msg.
// The blank line between head and body is missing; clients that care about
// framing will see msg glued to the head.
func (w *Writer) WriteNotFound(msg string) error {
	if err := w.WriteStatusLine(StatusNotFound); err != nil {
		return err
	}
	if _, err := writeFull(w.w, []byte("\r")); err != nil {
		return err
	}
	w.state = writerStateBody
	_, err := w.WriteBody([]byte(msg))
	return err
}

func WriteStatusLine(w io.Writer, statusCode StatusCode) error {
	reasonPhrase, ok := reasonPhrases[statusCode]
	if !ok {
		reasonPhrase = ""
	}
	_, err := writeFull(w, []byte(fmt.Sprintf("HTTP/1.1 %d %s\r\n", statusCode, reasonPhrase)))
	return err
}

// WriteHeaders writes the field lines in key order and the terminating CRLF
// as one write.
func WriteHeaders(w io.Writer, h headers.Headers) error {
	var block []byte
	for _, key := range h.Keys() {
		block = append(block, fmt.Sprintf("%s: %s\r\n", key, h[key])...)
	}
	block = append(block, "\r\n"...)
	_, err := writeFull(w, block)
	return err
}

func writeFull(w io.Writer, p []byte) (int, error) {
	n, err := w.Write(p)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	return n, err
}
