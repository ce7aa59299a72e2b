package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/csheth/postcraft/internal/archive"
	"github.com/csheth/postcraft/internal/tuitest"
)

func TestPostcraftGenerateAndSave(t *testing.T) {
	if testing.Short() {
		t.Skip("builds and drives the CLI in a PTY")
	}
	t.Parallel()

	var mu sync.Mutex
	var received map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, `{"error":"bad json"}`, http.StatusBadRequest)
			return
		}
		mu.Lock()
		received = body
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"post": "Ship it today!\n#golang"})
	}))
	defer server.Close()

	cmdDir := moduleDir(t)
	binary := buildBinary(t, cmdDir)
	workDir := t.TempDir()
	archivePath := filepath.Join(workDir, "saved_posts.json")

	rec, err := tuitest.Run(context.Background(), tuitest.Config{
		Command: []string{
			binary,
			"--no-alt-screen",
			"--endpoint", server.URL,
			"--archive", archivePath,
			"--log-file", filepath.Join(workDir, "postcraft.log"),
		},
		Dir:    workDir,
		Env:    []string{"HOME=" + workDir},
		Width:  100,
		Height: 40,
		Steps: []tuitest.Step{
			tuitest.Pause(time.Second),
			tuitest.Type("Go release party"),
			tuitest.Press(tuitest.KeyTab),
			tuitest.Press(tuitest.KeyRight),
			tuitest.Press(tuitest.KeyCtrlS),
			tuitest.Pause(time.Second),
			tuitest.Press(tuitest.KeyCtrlO),
			tuitest.Pause(500 * time.Millisecond),
			tuitest.Press(tuitest.KeyCtrlC),
		},
		Timeout:        15 * time.Second,
		AllowInterrupt: true,
	})
	if err != nil {
		t.Fatalf("run CLI: %v", err)
	}

	if _, ok := rec.FirstFrameContaining("Generate Post", "Platform"); !ok && !rec.Contains("Generate Post") {
		t.Fatal("initial form never rendered")
	}
	if !rec.Contains("Ship it today!") {
		t.Fatal("generated post never rendered")
	}

	mu.Lock()
	got := received
	mu.Unlock()
	if got["topic"] != "Go release party" || got["platform"] != "linkedin" || got["tone"] != "friendly" || got["style"] != "informative" {
		t.Fatalf("unexpected request body: %#v", got)
	}

	entries, err := archive.Load(archivePath)
	if err != nil {
		t.Fatalf("load archive: %v", err)
	}
	if len(entries) != 1 || entries[0].Post != "Ship it today!\n#golang" || entries[0].Platform != "linkedin" {
		t.Fatalf("unexpected archive: %#v", entries)
	}
}

func moduleDir(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller unavailable")
	}
	return filepath.Dir(file)
}

func buildBinary(t *testing.T, cmdDir string) string {
	t.Helper()
	name := "postcraft-integration"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	binPath := filepath.Join(t.TempDir(), name)
	cmd := exec.Command("go", "build", "-o", binPath, ".")
	cmd.Dir = cmdDir
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build CLI: %v\n%s", err, output)
	}
	return binPath
}
