package postgresql

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"transcription-service/internal/entity"
)

var ErrNotFound = errors.New("not found")

type TranscriptionRepository struct {
	pool *pgxpool.Pool
}

func NewTranscriptionRepository(pool *pgxpool.Pool) *TranscriptionRepository {
	return &TranscriptionRepository{pool: pool}
}

// Create inserts a new record already in processing state. There is no
// pending-at-rest window: by the time the row exists the worker run is
// scheduled.
func (r *TranscriptionRepository) Create(ctx context.Context, fileName, mediaPath string) (uuid.UUID, error) {
	const q = `
INSERT INTO transcriptions (file_name, media_path, status)
VALUES ($1, $2, 'processing')
RETURNING id;
`
	var id uuid.UUID
	if err := r.pool.QueryRow(ctx, q, fileName, mediaPath).Scan(&id); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// CreateFailed inserts a record that is failed from birth (media file
// missing at submit time).
func (r *TranscriptionRepository) CreateFailed(ctx context.Context, fileName, mediaPath, errText string) (uuid.UUID, error) {
	const q = `
INSERT INTO transcriptions (file_name, media_path, status, error)
VALUES ($1, $2, 'failed', $3)
RETURNING id;
`
	var id uuid.UUID
	if err := r.pool.QueryRow(ctx, q, fileName, mediaPath, errText).Scan(&id); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

const selectColumns = `
SELECT id, file_name, media_path, status, text, srt_path, language,
       duration, segments, word_count, segment_count, error,
       created_at, updated_at
FROM transcriptions
`

func (r *TranscriptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Transcription, error) {
	row := r.pool.QueryRow(ctx, selectColumns+`WHERE id = $1;`, id)

	t, err := scanTranscription(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *TranscriptionRepository) List(ctx context.Context) ([]*entity.Transcription, error) {
	rows, err := r.pool.Query(ctx, selectColumns+`ORDER BY created_at DESC;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Transcription
	for rows.Next() {
		t, err := scanTranscription(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TranscriptionRepository) SetResultCompleted(ctx context.Context, id uuid.UUID, res entity.Completion) error {
	segments, err := json.Marshal(res.Segments)
	if err != nil {
		return err
	}

	const q = `
UPDATE transcriptions
SET status='completed', text=$2, srt_path=$3, language=$4, duration=$5,
    segments=$6, word_count=$7, segment_count=$8, error=NULL, updated_at=now()
WHERE id=$1;
`
	tag, err := r.pool.Exec(ctx, q, id,
		res.Text, res.SRTPath, res.Language, res.Duration,
		segments, res.WordCount, res.SegmentCount,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TranscriptionRepository) SetResultFailed(ctx context.Context, id uuid.UUID, errText string) error {
	const q = `UPDATE transcriptions SET status='failed', error=$2, updated_at=now() WHERE id=$1;`

	tag, err := r.pool.Exec(ctx, q, id, errText)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTranscription(row rowScanner) (*entity.Transcription, error) {
	var (
		t            entity.Transcription
		statusText   string
		text         *string
		srtPath      *string
		language     *string
		duration     *float64
		segmentBytes []byte
		wordCount    *int
		segmentCount *int
		errText      *string
	)

	if err := row.Scan(
		&t.ID,
		&t.FileName,
		&t.MediaPath,
		&statusText,
		&text,    // NULL => nil
		&srtPath, // NULL => nil
		&language,
		&duration,
		&segmentBytes,
		&wordCount,
		&segmentCount,
		&errText,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		return nil, err
	}

	t.Status = entity.Status(statusText)
	if text != nil {
		t.Text = *text
	}
	if srtPath != nil {
		t.SRTPath = *srtPath
	}
	if language != nil {
		t.Language = *language
	}
	if duration != nil {
		t.Duration = *duration
	}
	if segmentBytes != nil {
		if err := json.Unmarshal(segmentBytes, &t.Segments); err != nil {
			return nil, err
		}
	}
	if wordCount != nil {
		t.WordCount = *wordCount
	}
	if segmentCount != nil {
		t.SegmentCount = *segmentCount
	}
	t.Error = errText

	return &t, nil
}
