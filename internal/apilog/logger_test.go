package apilog

import (
	"database/sql"
	"errors"
	"testing"

	"sagapi/m/internal/database"
	"sagapi/m/internal/migrations"
)

func newTestLogger(t *testing.T) *Logger {
	t.Helper()
	db := database.Connect(":memory:")
	t.Cleanup(func() { db.Close() })
	migrations.Run(db)
	return New(db)
}

func TestRecordAndGet(t *testing.T) {
	l := newTestLogger(t)

	l.Record(Entry{
		Endpoint:     "/api/receiving-tbs/create",
		Status:       "success",
		ResponseCode: 200,
		RequestBody:  `{"a":1}`,
		ResponseBody: map[string]any{"code": 200},
		AgentName:    "P1",
		Site:         "B1",
		IPAddress:    "192.0.2.1",
	})

	entry, err := l.Get(1)
	if err != nil {
		t.Fatal(err)
	}
	if entry.Endpoint != "/api/receiving-tbs/create" || entry.Status != "success" {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if entry.AgentName == nil || *entry.AgentName != "P1" {
		t.Fatalf("expected agent P1, got %v", entry.AgentName)
	}
	if entry.ResponseBody == nil || *entry.ResponseBody != `{"code":200}` {
		t.Fatalf("unexpected response body %v", entry.ResponseBody)
	}
}

func TestRecordLeavesIdentityAbsent(t *testing.T) {
	l := newTestLogger(t)

	l.Record(Entry{Endpoint: "/api/test", Status: "success", ResponseCode: 200})

	entry, err := l.Get(1)
	if err != nil {
		t.Fatal(err)
	}
	if entry.AgentName != nil || entry.Site != nil || entry.RequestBody != nil {
		t.Fatalf("expected absent identity fields, got %+v", entry)
	}
}

func TestGetMissingEntry(t *testing.T) {
	l := newTestLogger(t)

	if _, err := l.Get(42); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestListFilters(t *testing.T) {
	l := newTestLogger(t)

	l.Record(Entry{Endpoint: "/api/receiving-tbs/create", Status: "success", ResponseCode: 200, AgentName: "P1"})
	l.Record(Entry{Endpoint: "/api/auth/login", Status: "error", ResponseCode: 400})
	l.Record(Entry{Endpoint: "/api/auth/login", Status: "success", ResponseCode: 200, AgentName: "admin"})

	all, err := l.List("", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}

	failed, err := l.List("", "error")
	if err != nil {
		t.Fatal(err)
	}
	if len(failed) != 1 || failed[0].ResponseCode != 400 {
		t.Fatalf("unexpected error filter result %+v", failed)
	}

	byAgent, err := l.List("P1", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(byAgent) != 1 || byAgent[0].Endpoint != "/api/receiving-tbs/create" {
		t.Fatalf("unexpected search result %+v", byAgent)
	}
}

func TestStats(t *testing.T) {
	l := newTestLogger(t)

	l.Record(Entry{Endpoint: "/api/test", Status: "success", ResponseCode: 200})
	l.Record(Entry{Endpoint: "/api/test", Status: "success", ResponseCode: 200})
	l.Record(Entry{Endpoint: "/api/auth/login", Status: "error", ResponseCode: 400})

	stats, err := l.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalRequests != 3 || stats.SuccessRequests != 2 || stats.FailedRequests != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}
