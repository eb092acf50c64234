package httptransport

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"transcription-service/internal/caption"
	"transcription-service/internal/entity"
	"transcription-service/internal/media"
	"transcription-service/internal/repository/postgresql"
	"transcription-service/internal/service"
	"transcription-service/internal/storage"
)

// maxUploadSize caps an inbound media upload at 100 MB.
const maxUploadSize = 100 << 20

type Handler struct {
	svc      *service.TranscriptionService
	store    *storage.LocalStore
	streamer *media.Streamer
}

func NewHandler(svc *service.TranscriptionService, store *storage.LocalStore, streamer *media.Streamer) *Handler {
	return &Handler{svc: svc, store: store, streamer: streamer}
}

type uploadResp struct {
	Message         string `json:"message"`
	TranscriptionID string `json:"transcriptionId"`
}

// Upload godoc
// @Summary Upload a media file for transcription
// @Description Stores the file, creates a transcription job and starts background processing. The response returns before the worker finishes; poll the job for its outcome.
// @Tags transcriptions
// @Accept mpfd
// @Produce json
// @Param video formData file true "media file (mp4/webm/ogg)"
// @Success 201 {object} uploadResp
// @Failure 400 {object} apiError
// @Failure 500 {object} apiError
// @Router /transcriptions/upload [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	file, header, err := r.FormFile("video")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeErr(w, http.StatusBadRequest, "uploaded file too large")
			return
		}
		writeErr(w, http.StatusBadRequest, "no video file uploaded")
		return
	}
	defer file.Close()

	if !storage.IsAllowedMediaName(header.Filename) {
		writeErr(w, http.StatusBadRequest, "only video files are allowed")
		return
	}

	mediaPath, err := h.store.Save(file, header.Filename)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "could not store uploaded file")
		return
	}

	id, err := h.svc.Submit(r.Context(), mediaPath, header.Filename)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "could not create transcription")
		return
	}

	writeJSON(w, http.StatusCreated, uploadResp{
		Message:         "Video uploaded and processing started",
		TranscriptionID: id.String(),
	})
}

// List godoc
// @Summary List transcriptions
// @Description Returns all transcription jobs, newest first.
// @Tags transcriptions
// @Produce json
// @Success 200 {array} entity.Transcription
// @Failure 500 {object} apiError
// @Router /transcriptions [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "could not list transcriptions")
		return
	}
	if list == nil {
		list = []*entity.Transcription{}
	}
	writeJSON(w, http.StatusOK, list)
}

// Get godoc
// @Summary Get transcription by id
// @Tags transcriptions
// @Produce json
// @Param id path string true "transcription id (uuid)"
// @Success 200 {object} entity.Transcription
// @Failure 400 {object} apiError
// @Failure 404 {object} apiError
// @Router /transcriptions/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	t, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, postgresql.ErrNotFound) {
			writeErr(w, http.StatusNotFound, "transcription not found")
			return
		}
		writeErr(w, http.StatusInternalServerError, "could not fetch transcription")
		return
	}

	writeJSON(w, http.StatusOK, t)
}

// Captions godoc
// @Summary Download captions as SRT
// @Tags transcriptions
// @Produce plain
// @Param id path string true "transcription id (uuid)"
// @Success 200 {string} string "SRT body"
// @Failure 400 {object} apiError
// @Failure 404 {object} apiError
// @Router /transcriptions/{id}/captions [get]
func (h *Handler) Captions(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	srt, err := h.svc.Captions(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, postgresql.ErrNotFound):
			writeErr(w, http.StatusNotFound, "transcription not found")
		case errors.Is(err, caption.ErrNoSegments):
			writeErr(w, http.StatusNotFound, "captions not available")
		default:
			writeErr(w, http.StatusInternalServerError, "could not render captions")
		}
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", id.String()+".srt"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(srt))
}

// Media godoc
// @Summary Stream the uploaded media file
// @Description Serves the media file with byte-range support for seeking and resuming.
// @Tags transcriptions
// @Produce octet-stream
// @Param id path string true "transcription id (uuid)"
// @Param Range header string false "byte range, e.g. bytes=0-1023"
// @Success 200 {string} string "full content"
// @Success 206 {string} string "partial content"
// @Failure 400 {object} apiError
// @Failure 404 {object} apiError
// @Failure 416 {object} apiError
// @Router /transcriptions/{id}/media [get]
func (h *Handler) Media(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	t, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, postgresql.ErrNotFound) {
			writeErr(w, http.StatusNotFound, "transcription not found")
			return
		}
		writeErr(w, http.StatusInternalServerError, "could not fetch transcription")
		return
	}

	// Serve only errors before the first response byte, so every branch
	// here can still write a status.
	err = h.streamer.Serve(w, t.MediaPath, r.Header.Get("Range"))
	switch {
	case err == nil:
	case errors.Is(err, media.ErrFileNotFound):
		writeErr(w, http.StatusNotFound, "media file not found on server")
	case errors.Is(err, media.ErrRangeNotSatisfiable):
		var rangeErr *media.RangeNotSatisfiableError
		if errors.As(err, &rangeErr) {
			w.Header().Set("Content-Range", fmt.Sprintf("bytes */%d", rangeErr.Size))
		}
		writeErr(w, http.StatusRequestedRangeNotSatisfiable, "requested range not satisfiable")
	default:
		log.Printf("[http] media job_id=%s error=%v", id.String(), err)
		writeErr(w, http.StatusInternalServerError, "could not stream media file")
	}
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}
