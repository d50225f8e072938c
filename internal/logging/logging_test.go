package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestLevel(t *testing.T) {
	if Level(true) != zerolog.DebugLevel {
		t.Errorf("Level(true) = %v, want debug", Level(true))
	}
	if Level(false) != zerolog.InfoLevel {
		t.Errorf("Level(false) = %v, want info", Level(false))
	}
}

func TestResolveDir(t *testing.T) {
	t.Run("LogsFolderWins", func(t *testing.T) {
		t.Setenv("LOGS_FOLDER", "/var/log/distfit")
		t.Setenv("DATA_PATH", "/data")
		if got := ResolveDir("/opt/bin"); got != "/var/log/distfit" {
			t.Errorf("ResolveDir() = %q", got)
		}
	})

	t.Run("DataPath", func(t *testing.T) {
		t.Setenv("LOGS_FOLDER", "")
		t.Setenv("DATA_PATH", "/data")
		if got := ResolveDir("/opt/bin"); got != filepath.Join("/data", "logs") {
			t.Errorf("ResolveDir() = %q", got)
		}
	})

	t.Run("BinaryDir", func(t *testing.T) {
		t.Setenv("LOGS_FOLDER", "")
		t.Setenv("DATA_PATH", "")
		if got := ResolveDir("/opt/bin"); got != filepath.Join("/opt/bin", "logs") {
			t.Errorf("ResolveDir() = %q", got)
		}
		if got := ResolveDir(""); got != "logs" {
			t.Errorf("ResolveDir(\"\") = %q", got)
		}
	})
}

func TestNewFileWriter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")
	w, err := NewFileWriter(dir)
	if err != nil {
		t.Fatalf("NewFileWriter() error = %v", err)
	}
	defer w.Close()

	if _, err := w.Write([]byte("hello\n")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	if err != nil {
		t.Fatalf("log file not created: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("log file content = %q", data)
	}
	if _, err := os.Stat(filepath.Join(dir, ".write-test")); !os.IsNotExist(err) {
		t.Error("write-test file should be removed")
	}
}
