package caption_test

import (
	"errors"
	"testing"

	"transcription-service/internal/caption"
	"transcription-service/internal/entity"
)

func TestRender_SingleSegment(t *testing.T) {
	tr := &entity.Transcription{
		Status: entity.StatusCompleted,
		Segments: []entity.Segment{
			{Start: "00:00:00,000", End: "00:00:02,000", Text: "Hello"},
		},
	}

	got, err := caption.Render(tr)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	want := "1\n00:00:00,000 --> 00:00:02,000\nHello\n\n"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRender_SequentialIndexesAndOrder(t *testing.T) {
	tr := &entity.Transcription{
		Status: entity.StatusCompleted,
		Segments: []entity.Segment{
			{Start: "00:00:00,000", End: "00:00:01,000", Text: "hi"},
			{Start: "00:00:01,000", End: "00:00:02,000", Text: "there"},
		},
	}

	got, err := caption.Render(tr)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	want := "1\n00:00:00,000 --> 00:00:01,000\nhi\n\n" +
		"2\n00:00:01,000 --> 00:00:02,000\nthere\n\n"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRender_Deterministic(t *testing.T) {
	tr := &entity.Transcription{
		Status: entity.StatusCompleted,
		Segments: []entity.Segment{
			{Start: "00:00:00,000", End: "00:00:01,500", Text: "same"},
		},
	}

	a, err := caption.Render(tr)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	b, err := caption.Render(tr)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if a != b {
		t.Fatalf("expected identical output, got %q vs %q", a, b)
	}
}

func TestRender_NotCompleted(t *testing.T) {
	tr := &entity.Transcription{
		Status: entity.StatusProcessing,
		Segments: []entity.Segment{
			{Start: "00:00:00,000", End: "00:00:01,000", Text: "early"},
		},
	}

	if _, err := caption.Render(tr); !errors.Is(err, caption.ErrNoSegments) {
		t.Fatalf("expected ErrNoSegments, got %v", err)
	}
}

func TestRender_NoSegments(t *testing.T) {
	tr := &entity.Transcription{Status: entity.StatusCompleted}

	if _, err := caption.Render(tr); !errors.Is(err, caption.ErrNoSegments) {
		t.Fatalf("expected ErrNoSegments, got %v", err)
	}
}
