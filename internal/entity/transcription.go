package entity

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Segment is one timestamped span of transcribed speech.
// Start/End are display timecodes (HH:MM:SS,mmm), the *_seconds fields
// are the numeric offsets the worker measured.
type Segment struct {
	Start        string  `json:"start"`
	End          string  `json:"end"`
	Text         string  `json:"text"`
	StartSeconds float64 `json:"start_seconds"`
	EndSeconds   float64 `json:"end_seconds"`
}

type Transcription struct {
	ID           uuid.UUID `json:"id"`
	FileName     string    `json:"fileName"`
	MediaPath    string    `json:"mediaPath"`
	Status       Status    `json:"status"`
	Text         string    `json:"text,omitempty"`
	SRTPath      string    `json:"srtPath,omitempty"`
	Language     string    `json:"language,omitempty"`
	Duration     float64   `json:"duration,omitempty"`
	Segments     []Segment `json:"segments,omitempty"`
	WordCount    int       `json:"wordCount,omitempty"`
	SegmentCount int       `json:"segmentCount,omitempty"`
	Error        *string   `json:"error,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Completion carries the worker's result fields for the single
// processing -> completed transition. The json tags match the worker's
// stdout message shape.
type Completion struct {
	Text         string    `json:"text"`
	SRTPath      string    `json:"srtPath"`
	Duration     float64   `json:"duration"`
	Language     string    `json:"language"`
	Segments     []Segment `json:"segments"`
	WordCount    int       `json:"wordCount"`
	SegmentCount int       `json:"segmentCount"`
}
