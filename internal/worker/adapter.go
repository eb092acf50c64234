package worker

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"transcription-service/internal/entity"
)

// Error is the single failure type for a worker run. Output carries the
// worker's raw diagnostic text (stderr, or stdout when stderr is empty).
type Error struct {
	Message  string
	Output   string
	ExitCode int
}

func (e *Error) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("worker: %s (exit=%d)", e.Message, e.ExitCode)
	}
	return fmt.Sprintf("worker: %s (exit=%d): %s", e.Message, e.ExitCode, e.Output)
}

type commandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// commandRunner abstracts process execution for testability.
type commandRunner interface {
	Run(ctx context.Context, name string, args ...string) (commandResult, error)
}

type execRunner struct{}

func (r *execRunner) Run(ctx context.Context, name string, args ...string) (commandResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := commandResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: 0,
	}
	if err != nil {
		result.ExitCode = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		}
		return result, err
	}
	return result, nil
}

// WhisperAdapter invokes the external transcription script and parses its
// stdout message stream. Exactly one invocation per call, no retries.
type WhisperAdapter struct {
	pythonBin  string
	scriptPath string
	runner     commandRunner
}

func NewWhisperAdapter(pythonBin, scriptPath string) *WhisperAdapter {
	if pythonBin == "" {
		pythonBin = "python"
	}
	return &WhisperAdapter{
		pythonBin:  pythonBin,
		scriptPath: scriptPath,
		runner:     &execRunner{},
	}
}

// Invoke runs the worker for one media file. The worker prints a stream of
// JSON messages on stdout; the last one carrying a non-empty "text" field
// is the authoritative result. Non-zero exit, no qualifying message, or a
// result without segments all surface as *Error.
func (a *WhisperAdapter) Invoke(ctx context.Context, mediaPath, jobID string) (*entity.Completion, error) {
	out, err := a.runner.Run(ctx, a.pythonBin, a.scriptPath, mediaPath, jobID)
	if err != nil {
		return nil, &Error{
			Message:  "process failed",
			Output:   diagnostics(out),
			ExitCode: out.ExitCode,
		}
	}

	res, ok := lastResultMessage(out.Stdout)
	if !ok {
		return nil, &Error{
			Message:  "no result message on stdout",
			Output:   diagnostics(out),
			ExitCode: out.ExitCode,
		}
	}
	if res.Segments == nil {
		return nil, &Error{
			Message:  "result missing segments",
			Output:   diagnostics(out),
			ExitCode: out.ExitCode,
		}
	}
	return res, nil
}

// lastResultMessage scans the stdout line stream and keeps the last JSON
// message with a non-empty text field. Status and diagnostic messages that
// precede the result are skipped.
func lastResultMessage(stdout string) (*entity.Completion, bool) {
	var (
		res   *entity.Completion
		found bool
	)

	sc := bufio.NewScanner(strings.NewReader(stdout))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var candidate entity.Completion
		if err := json.Unmarshal([]byte(line), &candidate); err != nil {
			continue
		}
		if candidate.Text == "" {
			continue
		}
		res = &candidate
		found = true
	}
	return res, found
}

func diagnostics(out commandResult) string {
	if s := strings.TrimSpace(out.Stderr); s != "" {
		return s
	}
	return strings.TrimSpace(out.Stdout)
}
