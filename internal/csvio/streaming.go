package csvio

// streaming.go provides wrappers applied to the raw input stream before it
// reaches the CSV reader. Input arrives on stdin and can be arbitrarily
// large, so every transform works on a rolling buffer:
//
//   - UTF8Sanitizer: replaces invalid UTF-8 bytes with '?'
//   - BOMReader: strips a leading UTF-8 BOM (0xEF 0xBB 0xBF)
//   - CountingReader: tracks bytes consumed for the end-of-run log line
//
// Wrap applies all three in the required order.

import (
	"io"
	"unicode/utf8"
)

// UTF8Sanitizer wraps an io.Reader and replaces invalid UTF-8 sequences with
// '?' on the fly, using constant memory regardless of input size.
type UTF8Sanitizer struct {
	reader io.Reader

	// Bytes held back from the previous read that may begin a multi-byte
	// sequence completed by the next read.
	pending []byte
}

// NewUTF8Sanitizer creates a streaming UTF-8 sanitizer.
func NewUTF8Sanitizer(r io.Reader) *UTF8Sanitizer {
	return &UTF8Sanitizer{
		reader:  r,
		pending: make([]byte, 0, utf8.UTFMax),
	}
}

// Read implements io.Reader, sanitizing invalid sequences in place.
func (s *UTF8Sanitizer) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	offset := 0
	if len(s.pending) > 0 {
		offset = copy(p, s.pending)
		s.pending = s.pending[:0]
	}

	n, err := s.reader.Read(p[offset:])
	n += offset

	if n == 0 {
		return 0, err
	}

	// Fast path: most CSV exports are pure ASCII.
	if allASCII(p[:n]) {
		return n, err
	}

	sanitized := s.sanitize(p[:n], err == io.EOF)
	return sanitized, err
}

func allASCII(data []byte) bool {
	for _, b := range data {
		if b >= 0x80 {
			return false
		}
	}
	return true
}

// sanitize rewrites data in place and returns the number of usable bytes.
// When not at EOF, an incomplete trailing sequence is parked in pending
// instead of being replaced.
func (s *UTF8Sanitizer) sanitize(data []byte, atEOF bool) int {
	if utf8.Valid(data) {
		if !atEOF {
			if trailing := incompleteTrailing(data); trailing > 0 {
				s.pending = append(s.pending, data[len(data)-trailing:]...)
				return len(data) - trailing
			}
		}
		return len(data)
	}

	write := 0
	for read := 0; read < len(data); {
		r, size := utf8.DecodeRune(data[read:])

		if !atEOF && read+size >= len(data) && incompleteRune(data[read:]) {
			s.pending = append(s.pending, data[read:]...)
			return write
		}

		if r == utf8.RuneError && size == 1 {
			// '?' keeps the replacement single-byte so the rewrite
			// never grows the buffer.
			data[write] = '?'
			write++
			read++
		} else {
			copy(data[write:], data[read:read+size])
			write += size
			read += size
		}
	}

	return write
}

// incompleteTrailing returns how many bytes at the end of data could be the
// start of a multi-byte sequence whose remainder has not arrived yet.
func incompleteTrailing(data []byte) int {
	for i := 1; i <= 3 && i <= len(data); i++ {
		b := data[len(data)-i]
		if b >= 0xC0 {
			if i < seqLen(b) {
				return i
			}
			return 0
		}
		if b&0xC0 != 0x80 {
			return 0
		}
	}
	return 0
}

// seqLen returns the expected length of a UTF-8 sequence starting with b.
func seqLen(b byte) int {
	switch {
	case b < 0x80:
		return 1
	case b < 0xC0:
		return 0 // continuation byte
	case b < 0xE0:
		return 2
	case b < 0xF0:
		return 3
	default:
		return 4
	}
}

func incompleteRune(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	return seqLen(data[0]) > len(data)
}

// BOMReader wraps an io.Reader and skips a UTF-8 BOM if present. Windows
// tools routinely prepend one to exported CSV files.
type BOMReader struct {
	reader  io.Reader
	checked bool
	buf     [3]byte
	held    []byte
	offset  int
}

// NewBOMReader creates a BOM-skipping reader.
func NewBOMReader(r io.Reader) *BOMReader {
	return &BOMReader{reader: r}
}

// Read implements io.Reader. The first call inspects the stream head.
func (r *BOMReader) Read(p []byte) (int, error) {
	if !r.checked {
		r.checked = true

		n, err := io.ReadFull(r.reader, r.buf[:])
		if n == 0 {
			return 0, err
		}

		if n >= 3 && r.buf[0] == 0xEF && r.buf[1] == 0xBB && r.buf[2] == 0xBF {
			r.held = nil
		} else {
			r.held = r.buf[:n]
			r.offset = 0
		}

		if err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		if err != nil && err != io.EOF {
			return 0, err
		}

		if len(r.held) > 0 {
			copied := copy(p, r.held[r.offset:])
			r.offset += copied
			if r.offset >= len(r.held) {
				r.held = nil
			}
			if copied < len(p) && err != io.EOF {
				n, err2 := r.reader.Read(p[copied:])
				return copied + n, err2
			}
			return copied, err
		}
	}

	if len(r.held) > r.offset {
		copied := copy(p, r.held[r.offset:])
		r.offset += copied
		if r.offset >= len(r.held) {
			r.held = nil
		}
		return copied, nil
	}

	return r.reader.Read(p)
}

// CountingReader wraps an io.Reader to track bytes consumed.
type CountingReader struct {
	reader    io.Reader
	BytesRead int64
}

// NewCountingReader creates a counting reader.
func NewCountingReader(r io.Reader) *CountingReader {
	return &CountingReader{reader: r}
}

// Read implements io.Reader.
func (r *CountingReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.BytesRead += int64(n)
	return n, err
}

// Wrap layers BOM skipping, UTF-8 sanitization, and byte counting over r.
// BOM stripping must run first, before any byte inspection.
func Wrap(r io.Reader) *CountingReader {
	return NewCountingReader(NewUTF8Sanitizer(NewBOMReader(r)))
}
