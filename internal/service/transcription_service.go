package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"transcription-service/internal/caption"
	"transcription-service/internal/entity"
)

// Store port (implementation: postgresql.TranscriptionRepository).
type TranscriptionRepository interface {
	Create(ctx context.Context, fileName, mediaPath string) (uuid.UUID, error)
	CreateFailed(ctx context.Context, fileName, mediaPath, errText string) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Transcription, error)
	List(ctx context.Context) ([]*entity.Transcription, error)
	SetResultCompleted(ctx context.Context, id uuid.UUID, res entity.Completion) error
	SetResultFailed(ctx context.Context, id uuid.UUID, errText string) error
}

// WorkerAdapter runs the external transcription process for one media
// file and returns its single outcome.
type WorkerAdapter interface {
	Invoke(ctx context.Context, mediaPath, jobID string) (*entity.Completion, error)
}

// CaptionCache is an optional best-effort cache for rendered SRT bodies.
type CaptionCache interface {
	Get(ctx context.Context, id uuid.UUID) (string, bool)
	Set(ctx context.Context, id uuid.UUID, srt string)
}

type TranscriptionService struct {
	repo    TranscriptionRepository
	adapter WorkerAdapter
	cache   CaptionCache // may be nil

	// workerTimeout bounds one worker run; zero means no deadline and a
	// hung worker leaves the job in processing.
	workerTimeout time.Duration

	// terminal holds one sync.Once per job id so that the terminal store
	// update happens exactly once no matter how many times a dispatch is
	// driven for the same job. Entries are retained for the life of the
	// process: the store overwrites terminal rows unconditionally, so
	// dropping an entry would re-arm the slot for a later redispatch.
	// One pointer per submitted job.
	terminal sync.Map // uuid.UUID -> *sync.Once
}

func NewTranscriptionService(repo TranscriptionRepository, adapter WorkerAdapter, cache CaptionCache, workerTimeout time.Duration) *TranscriptionService {
	return &TranscriptionService{
		repo:          repo,
		adapter:       adapter,
		cache:         cache,
		workerTimeout: workerTimeout,
	}
}

// Submit creates the job record and launches the worker in the background.
// It returns as soon as the record exists; the caller polls for the
// outcome. When the media file is missing the record is created already
// failed and no worker is launched — the submission itself still succeeds.
func (s *TranscriptionService) Submit(ctx context.Context, mediaPath, displayName string) (uuid.UUID, error) {
	info, err := os.Stat(mediaPath)
	if err != nil || info.IsDir() {
		reason := fmt.Sprintf("media file not found at %s", mediaPath)
		id, cerr := s.repo.CreateFailed(ctx, displayName, mediaPath, reason)
		if cerr != nil {
			return uuid.Nil, cerr
		}
		log.Printf("[service] job_id=%s status=failed error=%q", id.String(), reason)
		return id, nil
	}

	id, err := s.repo.Create(ctx, displayName, mediaPath)
	if err != nil {
		return uuid.Nil, err
	}

	go s.Dispatch(id, mediaPath)

	return id, nil
}

// Dispatch runs one worker invocation for an existing job and merges its
// single outcome into the store. Submit calls it in the background; it is
// exported so a retry policy layered above this core can drive another
// invocation with the job's terminal slot still guarded.
func (s *TranscriptionService) Dispatch(id uuid.UUID, mediaPath string) {
	start := time.Now()

	// Background context: the submitting request has long since returned.
	ctx := context.Background()
	if s.workerTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.workerTimeout)
		defer cancel()
	}

	res, err := s.adapter.Invoke(ctx, mediaPath, id.String())
	if err != nil {
		s.finish(id, func() {
			if uerr := s.repo.SetResultFailed(context.Background(), id, err.Error()); uerr != nil {
				log.Printf("[service] job_id=%s set_failed error=%v", id.String(), uerr)
				return
			}
			log.Printf("[service] job_id=%s status=failed duration_ms=%d error=%v",
				id.String(), time.Since(start).Milliseconds(), err,
			)
		})
		return
	}

	s.finish(id, func() {
		if uerr := s.repo.SetResultCompleted(context.Background(), id, *res); uerr != nil {
			log.Printf("[service] job_id=%s set_completed error=%v", id.String(), uerr)
			return
		}
		log.Printf("[service] job_id=%s status=completed duration_ms=%d segments=%d words=%d",
			id.String(), time.Since(start).Milliseconds(), res.SegmentCount, res.WordCount,
		)
	})
}

// finish runs fn at most once per job id.
func (s *TranscriptionService) finish(id uuid.UUID, fn func()) {
	v, _ := s.terminal.LoadOrStore(id, &sync.Once{})
	v.(*sync.Once).Do(fn)
}

func (s *TranscriptionService) Get(ctx context.Context, id uuid.UUID) (*entity.Transcription, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *TranscriptionService) List(ctx context.Context) ([]*entity.Transcription, error) {
	return s.repo.List(ctx)
}

// Captions renders the job's SRT body, serving from the cache when the
// rendered text is already there. Segments are immutable once completed,
// so a cached body never goes stale.
func (s *TranscriptionService) Captions(ctx context.Context, id uuid.UUID) (string, error) {
	if s.cache != nil {
		if srt, ok := s.cache.Get(ctx, id); ok {
			return srt, nil
		}
	}

	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	srt, err := caption.Render(t)
	if err != nil {
		return "", err
	}

	if s.cache != nil {
		s.cache.Set(ctx, id, srt)
	}
	return srt, nil
}
