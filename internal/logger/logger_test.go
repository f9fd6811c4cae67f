package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestFileName(t *testing.T) {
	d := time.Date(2024, 3, 9, 23, 59, 0, 0, time.UTC)
	if got := FileName(d); got != "2024-03-09.log" {
		t.Fatalf("FileName = %s", got)
	}
}

func TestNew_WritesJSON(t *testing.T) {
	prev := zap.L()
	defer zap.ReplaceGlobals(prev)

	dir := filepath.Join(t.TempDir(), "logs")
	log, err := New(dir, false)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	zap.S().Infow("preload emitted", "handle", "wprig-singular")
	_ = log.Sync()

	data, err := os.ReadFile(filepath.Join(dir, FileName(time.Now())))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	for _, want := range []string{`"msg":"logger online"`, `"handle":"wprig-singular"`, `"level":"info"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %s:\n%s", want, out)
		}
	}
}
