// Package media serves media files with single-range partial content
// support for player seeking and resuming.
package media

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var (
	ErrFileNotFound        = errors.New("media file not found")
	ErrRangeNotSatisfiable = errors.New("requested range not satisfiable")
)

// RangeNotSatisfiableError reports an unserveable Range header together
// with the file size a 416 response must advertise in Content-Range.
type RangeNotSatisfiableError struct {
	Size int64
}

func (e *RangeNotSatisfiableError) Error() string {
	return ErrRangeNotSatisfiable.Error()
}

// Is makes errors.Is(err, ErrRangeNotSatisfiable) hold.
func (e *RangeNotSatisfiableError) Is(target error) bool {
	return target == ErrRangeNotSatisfiable
}

type Streamer struct{}

func NewStreamer() *Streamer {
	return &Streamer{}
}

// Serve writes the file at mediaPath to w, honoring an optional Range
// header value. File size is read from disk at request time. The body is
// streamed with bounded reads; the whole file is never held in memory.
// Each call opens its own descriptor, so concurrent streams of the same
// file do not interfere.
//
// Errors are only returned before any response byte is written; copy
// failures mid-stream (usually the client going away) are logged and
// swallowed since the status line is already out.
func (s *Streamer) Serve(w http.ResponseWriter, mediaPath, rangeHeader string) error {
	info, err := os.Stat(mediaPath)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrFileNotFound
		}
		return err
	}
	size := info.Size()
	contentType := contentTypeFor(mediaPath)

	if rangeHeader == "" {
		f, err := os.Open(mediaPath)
		if err != nil {
			return err
		}
		defer f.Close()

		w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		if _, err := io.Copy(w, f); err != nil {
			log.Printf("[media] stream path=%s error=%v", mediaPath, err)
		}
		return nil
	}

	start, end, err := parseRange(rangeHeader, size)
	if err != nil {
		return err
	}
	chunkSize := end - start + 1

	f, err := os.Open(mediaPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Seek(start, io.SeekStart); err != nil {
		return err
	}

	w.Header().Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", start, end, size))
	w.Header().Set("Accept-Ranges", "bytes")
	w.Header().Set("Content-Length", strconv.FormatInt(chunkSize, 10))
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusPartialContent)
	if _, err := io.CopyN(w, f, chunkSize); err != nil {
		log.Printf("[media] stream path=%s range=%d-%d error=%v", mediaPath, start, end, err)
	}
	return nil
}

// parseRange handles a single "bytes=start-end" spec, end optional.
// Multi-range requests and anything that does not fit the single-span
// shape are unsatisfiable, as is start at or past the file size.
func parseRange(header string, size int64) (start, end int64, err error) {
	unsatisfiable := &RangeNotSatisfiableError{Size: size}

	spec, ok := strings.CutPrefix(header, "bytes=")
	if !ok || strings.Contains(spec, ",") {
		return 0, 0, unsatisfiable
	}

	startStr, endStr, ok := strings.Cut(spec, "-")
	if !ok {
		return 0, 0, unsatisfiable
	}

	start, err = strconv.ParseInt(strings.TrimSpace(startStr), 10, 64)
	if err != nil || start < 0 {
		return 0, 0, unsatisfiable
	}
	if start >= size {
		return 0, 0, unsatisfiable
	}

	end = size - 1
	if s := strings.TrimSpace(endStr); s != "" {
		end, err = strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, 0, unsatisfiable
		}
		if end >= size {
			end = size - 1
		}
	}
	if end < start {
		return 0, 0, unsatisfiable
	}

	return start, end, nil
}

func contentTypeFor(mediaPath string) string {
	switch strings.ToLower(filepath.Ext(mediaPath)) {
	case ".webm":
		return "video/webm"
	case ".ogg":
		return "video/ogg"
	default:
		return "video/mp4"
	}
}
