package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/geocoder89/taskhub/internal/actorctx"
	"github.com/geocoder89/taskhub/internal/domain/task"
	"github.com/geocoder89/taskhub/internal/domain/user"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestClassifyDBErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "unique", err: &pgconn.PgError{Code: "23505"}, want: "unique_violation"},
		{name: "deadlock", err: &pgconn.PgError{Code: "40P01"}, want: "deadlock"},
		{name: "other pg", err: &pgconn.PgError{Code: "42P01"}, want: "pg_42P01"},
		{name: "deadline", err: context.DeadlineExceeded, want: "timeout"},
		{name: "conn", err: errors.New("connection reset by peer"), want: "connection"},
		{name: "not found", err: errors.New("task not found"), want: "not_found"},
		{name: "unknown", err: errors.New("boom"), want: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyDBErr(tt.err); got != tt.want {
				t.Fatalf("classifyDBErr() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestObserveDB_CountsErrors(t *testing.T) {
	p := NewProm(prometheus.NewRegistry())

	_ = p.ObserveDB("tasks.get", func() error { return nil })
	err := p.ObserveDB("tasks.get", func() error { return errors.New("boom") })
	if err == nil {
		t.Fatalf("expected error to be passed through")
	}

	if got := testutil.ToFloat64(p.DbErrorsTotal.WithLabelValues("tasks.get", "unknown")); got != 1 {
		t.Fatalf("errors_total = %v, want 1", got)
	}
}

func TestObserveDB_NotFoundIsNotAnError(t *testing.T) {
	p := NewProm(prometheus.NewRegistry())

	misses := []error{pgx.ErrNoRows, mongo.ErrNoDocuments, task.ErrNotFound, user.ErrNotFound}
	for _, miss := range misses {
		err := p.ObserveDB("tasks.delete", func() error { return miss })
		if !errors.Is(err, miss) {
			t.Fatalf("ObserveDB() = %v, want %v passed through", err, miss)
		}
	}

	if got := testutil.CollectAndCount(p.DbErrorsTotal); got != 0 {
		t.Fatalf("db errors series = %d, want 0", got)
	}
	if got := testutil.CollectAndCount(p.DbQueryDuration); got != 1 {
		t.Fatalf("duration series = %d, want 1 (not_found)", got)
	}
}

func TestLogger_AddsRequestAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "dev", "")

	ctx := actorctx.WithUserID(context.Background(), "user-42")
	ctx = actorctx.WithRequestID(ctx, "req-7")
	log.InfoContext(ctx, "hello")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("unmarshal log line: %v (%s)", err, buf.String())
	}
	if rec["user_id"] != "user-42" {
		t.Fatalf("user_id = %v, want user-42", rec["user_id"])
	}
	if rec["request_id"] != "req-7" {
		t.Fatalf("request_id = %v, want req-7", rec["request_id"])
	}
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		env, level string
		want       slog.Level
	}{
		{env: "dev", want: slog.LevelDebug},
		{env: "prod", want: slog.LevelInfo},
		{env: "dev", level: "warn", want: slog.LevelWarn},
		{env: "prod", level: "DEBUG", want: slog.LevelDebug},
		{env: "prod", level: "loud", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := levelFor(tt.env, tt.level); got != tt.want {
			t.Errorf("levelFor(%q, %q) = %v, want %v", tt.env, tt.level, got, tt.want)
		}
	}
}

func TestSamplerFor(t *testing.T) {
	tests := []struct {
		ratio float64
		want  string
	}{
		{ratio: 1, want: "AlwaysOnSampler"},
		{ratio: 2, want: "AlwaysOnSampler"},
		{ratio: 0, want: "AlwaysOffSampler"},
		{ratio: 0.25, want: "TraceIDRatioBased{0.25}"},
	}

	for _, tt := range tests {
		if got := samplerFor(tt.ratio).Description(); !strings.Contains(got, tt.want) {
			t.Errorf("samplerFor(%v) = %q, want it to contain %q", tt.ratio, got, tt.want)
		}
	}
}
