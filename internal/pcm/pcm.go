// Package pcm reads and writes raw interleaved little-endian PCM streams.
package pcm

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
)

// ErrTruncated is returned when a stream ends inside a sample.
var ErrTruncated = errors.New("pcm: stream ends inside a sample")

// Format is a sample encoding.
type Format int

const (
	// F32LE is 32-bit IEEE float, little endian.
	F32LE Format = iota
	// S16LE is signed 16-bit integer, little endian.
	S16LE
)

func (f Format) String() string {
	switch f {
	case F32LE:
		return "f32le"
	case S16LE:
		return "s16le"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Size returns the number of bytes per sample.
func (f Format) Size() int {
	if f == S16LE {
		return 2
	}

	return 4
}

// ParseFormat parses "f32le" or "s16le".
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "f32le", "f32", "":
		return F32LE, nil
	case "s16le", "s16":
		return S16LE, nil
	default:
		return 0, fmt.Errorf("pcm: unknown format %q", name)
	}
}

// Reader decodes samples from a byte stream.
type Reader struct {
	r      *bufio.Reader
	format Format
	buf    []byte
}

// NewReader returns a buffered reader decoding format from r.
func NewReader(r io.Reader, format Format) *Reader {
	return &Reader{r: bufio.NewReader(r), format: format}
}

// Read fills dst with up to len(dst) samples and returns how many were
// decoded. It returns io.EOF only when no sample was read, and ErrTruncated
// with the complete samples when the stream stops inside one.
func (r *Reader) Read(dst []float64) (int, error) {
	size := r.format.Size()
	need := len(dst) * size

	if cap(r.buf) < need {
		r.buf = make([]byte, need)
	}

	buf := r.buf[:need]

	n, err := io.ReadFull(r.r, buf)
	samples := n / size

	for i := range samples {
		dst[i] = r.decode(buf[i*size:])
	}

	switch {
	case err == nil:
		return samples, nil
	case errors.Is(err, io.EOF):
		return 0, io.EOF
	case errors.Is(err, io.ErrUnexpectedEOF):
		if n%size != 0 {
			return samples, ErrTruncated
		}

		return samples, nil
	default:
		return samples, fmt.Errorf("pcm: read: %w", err)
	}
}

func (r *Reader) decode(b []byte) float64 {
	if r.format == S16LE {
		return float64(int16(binary.LittleEndian.Uint16(b))) / 32768
	}

	return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
}

// Writer encodes samples to a byte stream. Call Flush when done.
type Writer struct {
	w      *bufio.Writer
	format Format
	buf    []byte
}

// NewWriter returns a buffered writer encoding format to w.
func NewWriter(w io.Writer, format Format) *Writer {
	return &Writer{w: bufio.NewWriter(w), format: format}
}

// Write encodes every sample of src. S16LE output is clipped to the
// integer range.
func (w *Writer) Write(src []float64) error {
	size := w.format.Size()
	need := len(src) * size

	if cap(w.buf) < need {
		w.buf = make([]byte, need)
	}

	buf := w.buf[:need]

	for i, v := range src {
		w.encode(buf[i*size:], v)
	}

	if _, err := w.w.Write(buf); err != nil {
		return fmt.Errorf("pcm: write: %w", err)
	}

	return nil
}

func (w *Writer) encode(b []byte, v float64) {
	if w.format == S16LE {
		s := math.Round(v * 32768)
		s = math.Max(math.Min(s, math.MaxInt16), math.MinInt16)
		binary.LittleEndian.PutUint16(b, uint16(int16(s)))

		return
	}

	binary.LittleEndian.PutUint32(b, math.Float32bits(float32(v)))
}

// Flush writes any buffered data.
func (w *Writer) Flush() error {
	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("pcm: flush: %w", err)
	}

	return nil
}
