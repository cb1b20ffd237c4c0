package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Hafiz-shamnad/TicsLab/pkg/config"
)

func TestGoodNewLogger(t *testing.T) {
	for _, c := range []*config.Config{
		config.DefaultConfig(),
		{},
		{Log: config.LogConfig{Format: "json"}},
		{Log: config.LogConfig{Path: filepath.Join(t.TempDir(), "log", "logfile.txt")}},
	} {
		_, f, err := NewLogger(c)
		if err != nil {
			t.Errorf("NewLogger(%v) => _, _, %v, want _, _, nil", c, err)
		}
		if f != nil {
			f.Close()
		}
	}
}

func TestBadNewLogger(t *testing.T) {
	for _, c := range []*config.Config{
		nil,
		{Log: config.LogConfig{Path: "\x00"}},
	} {
		_, f, err := NewLogger(c)
		if err == nil {
			t.Errorf("NewLogger(%v) => _, _, nil, want _, _, %v", c, err)
		}
		if f != nil {
			f.Close()
		}
	}
}

func TestLogToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tics.log")
	logger, f, err := NewLogger(&config.Config{Log: config.LogConfig{Format: "logfmt", Path: path}})
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("uploaded", "filename", "report.txt")
	f.Close()

	bts, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(bts), "filename=report.txt") {
		t.Errorf("log file => %q, want filename=report.txt", bts)
	}
}
