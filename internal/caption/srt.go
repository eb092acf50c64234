// Package caption renders a completed transcription's segments as SRT text.
package caption

import (
	"errors"
	"fmt"
	"strings"

	"transcription-service/internal/entity"
)

// ErrNoSegments is returned when the transcription is not completed or has
// no segment list to render.
var ErrNoSegments = errors.New("transcription has no segments")

// Render produces sequential SRT blocks: 1-based index, "start --> end"
// timecode line (segment timecodes verbatim), segment text, blank line.
// Pure: the same transcription always yields identical output.
func Render(t *entity.Transcription) (string, error) {
	if t.Status != entity.StatusCompleted || len(t.Segments) == 0 {
		return "", ErrNoSegments
	}

	var b strings.Builder
	for i, seg := range t.Segments {
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n", i+1, seg.Start, seg.End, seg.Text)
	}
	return b.String(), nil
}
