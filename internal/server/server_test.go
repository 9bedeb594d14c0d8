package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"github.com/wyawin/docaudit/internal/home"
)

func startTestServer(t *testing.T, port string) (string, context.CancelFunc, chan error) {
	t.Helper()

	h, err := home.New(t.TempDir())
	if err != nil {
		t.Fatalf("home.New() error = %v", err)
	}

	srv, err := New(Config{
		Host: "127.0.0.1",
		Port: port,
		Home: h,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start(ctx)
	}()

	baseURL := fmt.Sprintf("http://127.0.0.1:%s", port)
	if err := waitForServer(baseURL, 10*time.Second); err != nil {
		cancel()
		t.Fatalf("server did not start: %v", err)
	}

	return baseURL, cancel, serverErr
}

// waitForServer polls the health endpoint until the server responds.
func waitForServer(baseURL string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(baseURL + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("server not ready after %s", timeout)
}

func TestServer_Lifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	baseURL, cancel, serverErr := startTestServer(t, "18080")

	t.Run("health_endpoint", func(t *testing.T) {
		resp, err := http.Get(baseURL + "/health")
		if err != nil {
			t.Fatalf("GET /health error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}

		var body map[string]string
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decode error = %v", err)
		}
		if body["status"] != "ok" {
			t.Errorf("status = %q, want %q", body["status"], "ok")
		}
	})

	t.Run("ready_endpoint", func(t *testing.T) {
		resp, err := http.Get(baseURL + "/ready")
		if err != nil {
			t.Fatalf("GET /ready error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
	})

	t.Run("version_endpoint", func(t *testing.T) {
		resp, err := http.Get(baseURL + "/version")
		if err != nil {
			t.Fatalf("GET /version error = %v", err)
		}
		defer resp.Body.Close()

		var body map[string]string
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decode error = %v", err)
		}
		if body["release"] == "" {
			t.Error("release is empty")
		}
	})

	t.Run("list_empty", func(t *testing.T) {
		resp, err := http.Get(baseURL + "/api/analyses")
		if err != nil {
			t.Fatalf("GET /api/analyses error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}

		var body struct {
			Analyses []json.RawMessage `json:"analyses"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decode error = %v", err)
		}
		if len(body.Analyses) != 0 {
			t.Errorf("analyses = %d, want 0", len(body.Analyses))
		}
	})

	t.Run("get_unknown_id", func(t *testing.T) {
		resp, err := http.Get(baseURL + "/api/analyses/no-such-id")
		if err != nil {
			t.Fatalf("GET error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
		}
	})

	t.Run("overlay_bad_kind", func(t *testing.T) {
		resp, err := http.Get(baseURL + "/api/analyses/no-such-id/overlay/bogus")
		if err != nil {
			t.Fatalf("GET error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
		}
	})

	t.Run("upload_rejects_non_pdf_name", func(t *testing.T) {
		status := uploadFile(t, baseURL, "notes.txt", []byte("plain text"))
		if status != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", status, http.StatusBadRequest)
		}
	})

	t.Run("upload_rejects_fake_pdf", func(t *testing.T) {
		// .pdf name but not PDF content; content sniffing catches it
		status := uploadFile(t, baseURL, "fake.pdf", []byte("just some text"))
		if status != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", status, http.StatusBadRequest)
		}
	})

	t.Run("upload_rejects_corrupt_pdf", func(t *testing.T) {
		// Correct magic bytes, unparseable body
		status := uploadFile(t, baseURL, "corrupt.pdf", []byte("%PDF-1.4\ngarbage"))
		if status != http.StatusUnprocessableEntity {
			t.Errorf("status = %d, want %d", status, http.StatusUnprocessableEntity)
		}
	})

	cancel()

	select {
	case err := <-serverErr:
		if err != nil {
			t.Errorf("Start() error = %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Error("server did not shut down")
	}
}

func uploadFile(t *testing.T, baseURL, name string, content []byte) int {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		t.Fatalf("CreateFormFile() error = %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	resp, err := http.Post(baseURL+"/api/analyses", mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("POST /api/analyses error = %v", err)
	}
	defer resp.Body.Close()
	return resp.StatusCode
}
