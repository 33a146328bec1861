package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/empmanagement/employee-api/internal/core/domain"
	"github.com/empmanagement/employee-api/internal/infrastructure/queue"
)

type recordingAuditRepo struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (r *recordingAuditRepo) InsertEvent(_ context.Context, event domain.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recordingAuditRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func TestShutdown_DrainsAuditQueue(t *testing.T) {
	repo := &recordingAuditRepo{}
	dispatcher := queue.NewDispatcher(2, repo, zerolog.Nop())
	auditCtx, stopAudit := context.WithCancel(context.Background())
	defer stopAudit()
	dispatcher.Start(auditCtx)

	for _, id := range []string{"a", "b", "c"} {
		dispatcher.Record(domain.AuditEvent{EmployeeID: id, Action: domain.AuditCreated, At: time.Now()})
	}

	var stopped bool
	stopServer := func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); !ok {
			t.Error("server shutdown must be bounded by a deadline")
		}
		stopped = true
		return nil
	}

	var logs bytes.Buffer
	if err := shutdown(stopServer, stopAudit, dispatcher, time.Second, zerolog.New(&logs)); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if !stopped {
		t.Fatal("server was not stopped")
	}
	if auditCtx.Err() == nil {
		t.Fatal("audit workers were not cancelled")
	}
	if got := repo.count(); got != 3 {
		t.Fatalf("expected 3 persisted events, got %d", got)
	}
	if !strings.Contains(logs.String(), "server stopped") {
		t.Fatalf("missing stop log: %s", logs.String())
	}
}

func TestShutdown_ReportsServerError(t *testing.T) {
	dispatcher := queue.NewDispatcher(1, &recordingAuditRepo{}, zerolog.Nop())
	auditCtx, stopAudit := context.WithCancel(context.Background())
	defer stopAudit()
	dispatcher.Start(auditCtx)

	boom := errors.New("listener stuck")
	var logs bytes.Buffer
	err := shutdown(func(context.Context) error { return boom }, stopAudit, dispatcher, time.Second, zerolog.New(&logs))
	if !errors.Is(err, boom) {
		t.Fatalf("expected %v, got %v", boom, err)
	}
	if auditCtx.Err() == nil {
		t.Fatal("audit workers must stop even when the server fails to shut down")
	}
	if !strings.Contains(logs.String(), "graceful shutdown failed") {
		t.Fatalf("missing failure log: %s", logs.String())
	}
}
