// Package httprange parses HTTP Range request headers into concrete byte
// intervals. Only single-range requests of the form "bytes=start-end" are
// supported; multipart ranges are rejected as unsatisfiable.
package httprange

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnsatisfiable is returned for any Range header that cannot be resolved
// into a valid byte interval against the object size. Callers should answer
// with 416 Range Not Satisfiable.
var ErrUnsatisfiable = errors.New("range not satisfiable")

// ByteRange is an inclusive byte interval with 0 <= Start <= End < size.
// It is derived per request and never persisted.
type ByteRange struct {
	Start int64
	End   int64
}

// Length returns the number of bytes the range covers.
func (r ByteRange) Length() int64 {
	return r.End - r.Start + 1
}

// ContentRange formats the Content-Range response header value for a 206.
func (r ByteRange) ContentRange(size int64) string {
	return fmt.Sprintf("bytes %d-%d/%d", r.Start, r.End, size)
}

// Parse resolves a Range header against the total object size.
//
// Supported forms:
//
//	bytes=N-M   bounded; end is clamped to size-1
//	bytes=N-    open-ended; through the last byte
//	bytes=-N    suffix; the last N bytes, N > 0
//
// Any other shape, non-numeric fields, multipart ranges, or an interval that
// is empty after clamping yields ErrUnsatisfiable.
func Parse(header string, size int64) (ByteRange, error) {
	spec, ok := strings.CutPrefix(header, "bytes=")
	if !ok {
		return ByteRange{}, fmt.Errorf("%w: missing bytes unit", ErrUnsatisfiable)
	}
	if strings.Contains(spec, ",") {
		return ByteRange{}, fmt.Errorf("%w: multipart ranges not supported", ErrUnsatisfiable)
	}

	startStr, endStr, ok := strings.Cut(spec, "-")
	if !ok {
		return ByteRange{}, fmt.Errorf("%w: missing separator", ErrUnsatisfiable)
	}

	if startStr == "" {
		return parseSuffix(endStr, size)
	}

	start, err := strconv.ParseInt(startStr, 10, 64)
	if err != nil || start < 0 {
		return ByteRange{}, fmt.Errorf("%w: invalid start", ErrUnsatisfiable)
	}

	end := size - 1
	if endStr != "" {
		end, err = strconv.ParseInt(endStr, 10, 64)
		if err != nil || end < 0 {
			return ByteRange{}, fmt.Errorf("%w: invalid end", ErrUnsatisfiable)
		}
		end = min(end, size-1)
	}

	if start > end {
		return ByteRange{}, fmt.Errorf("%w: empty interval after clamping", ErrUnsatisfiable)
	}

	return ByteRange{Start: start, End: end}, nil
}

// parseSuffix handles the "bytes=-N" form: the last N bytes of the object.
func parseSuffix(suffixStr string, size int64) (ByteRange, error) {
	suffix, err := strconv.ParseInt(suffixStr, 10, 64)
	if err != nil || suffix <= 0 {
		return ByteRange{}, fmt.Errorf("%w: invalid suffix length", ErrUnsatisfiable)
	}
	if size <= 0 {
		return ByteRange{}, fmt.Errorf("%w: empty object", ErrUnsatisfiable)
	}
	return ByteRange{Start: max(0, size-suffix), End: size - 1}, nil
}
