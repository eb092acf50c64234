package worker

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeRunner struct {
	res commandResult
	err error

	name string
	args []string
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) (commandResult, error) {
	f.name = name
	f.args = args
	return f.res, f.err
}

func newTestAdapter(runner commandRunner) *WhisperAdapter {
	return &WhisperAdapter{
		pythonBin:  "python",
		scriptPath: "whisperService.py",
		runner:     runner,
	}
}

func TestInvoke_PassesArgs(t *testing.T) {
	runner := &fakeRunner{res: commandResult{
		Stdout: `{"text":"hi","segments":[],"wordCount":1,"segmentCount":0}`,
	}}
	a := newTestAdapter(runner)

	if _, err := a.Invoke(context.Background(), "/media/clip.mp4", "job-1"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if runner.name != "python" {
		t.Fatalf("expected python, got %s", runner.name)
	}
	want := []string{"whisperService.py", "/media/clip.mp4", "job-1"}
	if len(runner.args) != 3 || runner.args[0] != want[0] || runner.args[1] != want[1] || runner.args[2] != want[2] {
		t.Fatalf("expected args %v, got %v", want, runner.args)
	}
}

func TestInvoke_SelectsLastResultMessage(t *testing.T) {
	stdout := strings.Join([]string{
		`{"status":"Starting transcription..."}`,
		`{"status":"Model loaded, transcribing..."}`,
		`{"text":"partial draft","segments":[],"wordCount":2,"segmentCount":0}`,
		`{"text":"hi there","duration":10,"language":"en","segments":[{"start":"00:00:00,000","end":"00:00:01,000","text":"hi","start_seconds":0,"end_seconds":1}],"wordCount":2,"segmentCount":1}`,
	}, "\n")

	a := newTestAdapter(&fakeRunner{res: commandResult{Stdout: stdout}})

	res, err := a.Invoke(context.Background(), "/media/clip.mp4", "job-1")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if res.Text != "hi there" {
		t.Fatalf("expected last result message to win, got text=%q", res.Text)
	}
	if res.Language != "en" || res.Duration != 10 {
		t.Fatalf("unexpected result fields: %+v", res)
	}
	if len(res.Segments) != 1 || res.Segments[0].Text != "hi" {
		t.Fatalf("unexpected segments: %+v", res.Segments)
	}
}

func TestInvoke_SkipsGarbageLines(t *testing.T) {
	stdout := strings.Join([]string{
		"not json at all",
		`{"text":"ok","segments":[],"wordCount":1,"segmentCount":0}`,
		"",
		"   ",
	}, "\n")

	a := newTestAdapter(&fakeRunner{res: commandResult{Stdout: stdout}})

	res, err := a.Invoke(context.Background(), "/media/clip.mp4", "job-1")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if res.Text != "ok" {
		t.Fatalf("expected text=ok, got %q", res.Text)
	}
}

func TestInvoke_NoResultMessage(t *testing.T) {
	stdout := `{"status":"Starting transcription..."}` + "\n" + `{"error":"CUDA out of memory"}`

	a := newTestAdapter(&fakeRunner{res: commandResult{Stdout: stdout}})

	_, err := a.Invoke(context.Background(), "/media/clip.mp4", "job-1")

	var werr *Error
	if !errors.As(err, &werr) {
		t.Fatalf("expected *worker.Error, got %v", err)
	}
	if !strings.Contains(werr.Output, "CUDA out of memory") {
		t.Fatalf("expected raw diagnostics preserved, got %q", werr.Output)
	}
}

func TestInvoke_ResultMissingSegments(t *testing.T) {
	a := newTestAdapter(&fakeRunner{res: commandResult{
		Stdout: `{"text":"hi there","duration":10,"language":"en","wordCount":2,"segmentCount":2}`,
	}})

	_, err := a.Invoke(context.Background(), "/media/clip.mp4", "job-1")

	var werr *Error
	if !errors.As(err, &werr) {
		t.Fatalf("expected *worker.Error, got %v", err)
	}
	if !strings.Contains(werr.Message, "segments") {
		t.Fatalf("expected segments failure, got %q", werr.Message)
	}
}

func TestInvoke_ProcessFailure(t *testing.T) {
	a := newTestAdapter(&fakeRunner{
		res: commandResult{Stderr: "Traceback: whisper blew up", ExitCode: 1},
		err: errors.New("exit status 1"),
	})

	_, err := a.Invoke(context.Background(), "/media/clip.mp4", "job-1")

	var werr *Error
	if !errors.As(err, &werr) {
		t.Fatalf("expected *worker.Error, got %v", err)
	}
	if werr.ExitCode != 1 {
		t.Fatalf("expected exit code 1, got %d", werr.ExitCode)
	}
	if !strings.Contains(werr.Output, "whisper blew up") {
		t.Fatalf("expected stderr in diagnostics, got %q", werr.Output)
	}
}
