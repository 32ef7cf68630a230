package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"info", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNopBeforeInit(t *testing.T) {
	// helpers must be safe to call before Init
	Named("scene").Info("ignored")
	Debug("ignored")
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "neowatch.log")
	cfg := DefaultFileConfig(path)
	cfg.Compress = false

	if err := InitWithFileConfig("info", cfg, false); err != nil {
		t.Fatalf("InitWithFileConfig: %v", err)
	}
	defer func() {
		Log = zap.NewNop()
		Sugar = Log.Sugar()
	}()

	Named("camera").Info("mode changed", zap.String("mode", "free"))
	Debug("filtered out")
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	out := string(data)
	for _, want := range []string{"INFO", "camera", "mode changed", "mode", "free"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "filtered out") {
		t.Error("debug entry written at info level")
	}
}
