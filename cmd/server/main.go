// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	_ "transcription-service/docs"
	"transcription-service/internal/media"
	"transcription-service/internal/repository/postgresql"
	"transcription-service/internal/service"
	"transcription-service/internal/storage"
	httptransport "transcription-service/internal/transport/http"
	"transcription-service/internal/worker"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pgDSN := mustEnv("POSTGRES_DSN")
	whisperScript := mustEnv("WHISPER_SCRIPT")

	httpAddr := envOr("HTTP_ADDR", ":8080")
	uploadsDir := envOr("UPLOADS_DIR", "uploads")
	pythonBin := envOr("PYTHON_BIN", "python")
	redisAddr := envOr("REDIS_ADDR", "")
	// 0 disables the deadline: a hung worker leaves its job in processing.
	workerTimeoutMin := envIntOr("WORKER_TIMEOUT_MINUTES", 0)

	// Postgres
	pool, err := postgresql.NewPool(ctx, pgDSN)
	if err != nil {
		log.Fatalf("pg: %v", err)
	}
	defer pool.Close()

	// Redis caption cache (optional)
	var cache service.CaptionCache
	if redisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("redis: %v", err)
		}
		cache = service.NewRedisCaptionCache(rdb, 24*time.Hour)
	}

	// DI
	repo := postgresql.NewTranscriptionRepository(pool)
	adapter := worker.NewWhisperAdapter(pythonBin, whisperScript)
	svc := service.NewTranscriptionService(repo, adapter, cache, time.Duration(workerTimeoutMin)*time.Minute)

	store, err := storage.NewLocalStore(uploadsDir)
	if err != nil {
		log.Fatalf("uploads dir: %v", err)
	}

	h := httptransport.NewHandler(svc, store, media.NewStreamer())

	srv := &http.Server{
		Addr:    httpAddr,
		Handler: httptransport.Routes(h),
	}

	go func() {
		log.Printf("server started: addr=%s uploads_dir=%s script=%s", httpAddr, uploadsDir, whisperScript)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
	log.Println("server stopped")
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("missing env: %s", key)
	}
	return v
}

func envOr(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func envIntOr(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}
