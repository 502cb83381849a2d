package cli

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		emit    func(*log.Logger)
		wantLog bool
	}{
		{"warn at info", log.InfoLevel, func(l *log.Logger) { l.Warn("skipping line") }, true},
		{"info at info", log.InfoLevel, func(l *log.Logger) { l.Info("converted") }, true},
		{"debug at info", log.InfoLevel, func(l *log.Logger) { l.Debug("converting") }, false},
		{"debug at debug", log.DebugLevel, func(l *log.Logger) { l.Debug("converting") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.emit(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("logged = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestNewLoggerTimestampPrecision(t *testing.T) {
	tests := []struct {
		level log.Level
		want  *regexp.Regexp
	}{
		{log.InfoLevel, regexp.MustCompile(`^\d{2}:\d{2}:\d{2} `)},
		{log.DebugLevel, regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{3} `)},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		newLogger(&buf, tt.level).Info("x")
		if !tt.want.MatchString(buf.String()) {
			t.Errorf("level %v: output = %q, want match %s", tt.level, buf.String(), tt.want)
		}
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, log.InfoLevel)).done("converted graphs", "failed", 2)

	out := buf.String()
	for _, want := range []string{"converted graphs", "failed=2", "elapsed="} {
		if !strings.Contains(out, want) {
			t.Errorf("done() output = %q, want %q", out, want)
		}
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("loggerFromContext() without a logger should return log.Default()")
	}

	var buf bytes.Buffer
	l := newLogger(&buf, log.InfoLevel)
	ctx := withLogger(context.Background(), l)
	if loggerFromContext(ctx) != l {
		t.Error("loggerFromContext() should return the attached logger")
	}
}
