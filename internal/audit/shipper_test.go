package audit

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/wms-platform/tenants-admin/internal/config"
	"github.com/wms-platform/tenants-admin/internal/db/models"
)

func sampleEntry() *models.AuditLog {
	return &models.AuditLog{
		ID:          "log-1",
		TenantID:    "tenant_x",
		Action:      models.AuditActionCreate,
		EntityType:  "tenant",
		EntityID:    "tenant_x",
		PerformedBy: models.AuditActor{Username: "system"},
		Timestamp:   time.Now(),
	}
}

// ---------------------------------------------------------------------------
// FileShipper
// ---------------------------------------------------------------------------

func TestFileShipper_WritesOneJSONLinePerEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	shipper, err := NewFileShipper(&config.AuditFileConfig{Path: path})
	if err != nil {
		t.Fatalf("NewFileShipper: %v", err)
	}

	if err := shipper.Ship(context.Background(), sampleEntry()); err != nil {
		t.Fatalf("Ship: %v", err)
	}
	if err := shipper.Ship(context.Background(), sampleEntry()); err != nil {
		t.Fatalf("Ship: %v", err)
	}
	if err := shipper.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	lines := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry models.AuditLog
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			t.Fatalf("line %d is not valid JSON: %v", lines+1, err)
		}
		if entry.ID != "log-1" {
			t.Errorf("ID = %q, want %q", entry.ID, "log-1")
		}
		lines++
	}
	if lines != 2 {
		t.Errorf("lines = %d, want 2", lines)
	}
}

func TestFileShipper_BadPath(t *testing.T) {
	_, err := NewFileShipper(&config.AuditFileConfig{Path: "/nonexistent-dir/audit.log"})
	if err == nil {
		t.Error("expected error for unwritable path")
	}
}

// ---------------------------------------------------------------------------
// WebhookShipper
// ---------------------------------------------------------------------------

func TestWebhookShipper_PostsEntry(t *testing.T) {
	received := make(chan *models.AuditLog, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Content-Type = %q", r.Header.Get("Content-Type"))
		}
		if r.Header.Get("X-Audit-Token") != "secret" {
			t.Errorf("custom header not forwarded")
		}
		var entry models.AuditLog
		if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
			t.Errorf("decode: %v", err)
		}
		received <- &entry
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	shipper, err := NewWebhookShipper(&config.AuditWebhookConfig{
		URL:     server.URL,
		Headers: map[string]string{"X-Audit-Token": "secret"},
	})
	if err != nil {
		t.Fatalf("NewWebhookShipper: %v", err)
	}

	if err := shipper.Ship(context.Background(), sampleEntry()); err != nil {
		t.Fatalf("Ship: %v", err)
	}

	select {
	case entry := <-received:
		if entry.TenantID != "tenant_x" {
			t.Errorf("TenantID = %q", entry.TenantID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("webhook never received the entry")
	}
}

func TestWebhookShipper_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	shipper, err := NewWebhookShipper(&config.AuditWebhookConfig{URL: server.URL})
	if err != nil {
		t.Fatalf("NewWebhookShipper: %v", err)
	}
	if err := shipper.Ship(context.Background(), sampleEntry()); err == nil {
		t.Error("expected error for 502 response")
	}
}

func TestWebhookShipper_RequiresURL(t *testing.T) {
	if _, err := NewWebhookShipper(&config.AuditWebhookConfig{}); err == nil {
		t.Error("expected error for missing URL")
	}
}

// ---------------------------------------------------------------------------
// MultiShipper
// ---------------------------------------------------------------------------

func TestNewMultiShipper_SkipsDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	ms, err := NewMultiShipper([]config.AuditShipperConfig{
		{Enabled: false, Type: "webhook", Webhook: &config.AuditWebhookConfig{URL: "http://x"}},
		{Enabled: true, Type: "file", File: &config.AuditFileConfig{Path: path}},
	})
	if err != nil {
		t.Fatalf("NewMultiShipper: %v", err)
	}
	defer ms.Close()

	if len(ms.shippers) != 1 {
		t.Errorf("len(shippers) = %d, want 1", len(ms.shippers))
	}
}

func TestNewMultiShipper_UnknownType(t *testing.T) {
	_, err := NewMultiShipper([]config.AuditShipperConfig{
		{Enabled: true, Type: "syslog"},
	})
	if err == nil {
		t.Error("expected error for unknown shipper type")
	}
}

func TestMultiShipper_ContinuesPastFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer failing.Close()

	ms, err := NewMultiShipper([]config.AuditShipperConfig{
		{Enabled: true, Type: "webhook", Webhook: &config.AuditWebhookConfig{URL: failing.URL}},
		{Enabled: true, Type: "file", File: &config.AuditFileConfig{Path: path}},
	})
	if err != nil {
		t.Fatalf("NewMultiShipper: %v", err)
	}
	defer ms.Close()

	if err := ms.Ship(context.Background(), sampleEntry()); err == nil {
		t.Error("expected the webhook failure to surface")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file destination: %v", err)
	}
	if len(data) == 0 {
		t.Error("file destination did not receive the entry despite webhook failure")
	}
}
