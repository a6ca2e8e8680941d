package posture

import (
	"runtime"
	"testing"
	"time"

	"github.com/ayoisaiah/lockin/internal/osutil"
)

func TestParseScore(t *testing.T) {
	cases := []struct {
		name  string
		out   string
		score int
		ok    bool
	}{
		{name: "plain integer", out: "72", score: 72, ok: true},
		{name: "trailing newline", out: "100\n", score: 100, ok: true},
		{name: "zero", out: "0", score: 0, ok: true},
		{name: "over range", out: "101", ok: false},
		{name: "negative", out: "-1", ok: false},
		{name: "not a number", out: "slouching", ok: false},
		{name: "empty", out: "", ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score, ok := parseScore(tc.out)

			if ok != tc.ok {
				t.Fatalf("expected ok=%v, got %v", tc.ok, ok)
			}

			if ok && score != tc.score {
				t.Errorf("expected score %d, got %d", tc.score, score)
			}
		})
	}
}

func TestCommandProvider(t *testing.T) {
	if runtime.GOOS == osutil.Windows {
		t.Skip("skipping shell-based test on Windows")
	}

	t.Run("reads score from stdout", func(t *testing.T) {
		p := NewCommand("echo 64", time.Second)

		score, ok := p.Score()
		if !ok {
			t.Fatal("expected a score")
		}

		if score != 64 {
			t.Errorf("expected 64, got %d", score)
		}
	})

	t.Run("missing command yields no score", func(t *testing.T) {
		p := NewCommand("lockin-no-such-sensor", time.Second)

		if _, ok := p.Score(); ok {
			t.Error("expected no score from a missing command")
		}
	})

	t.Run("empty command yields no score", func(t *testing.T) {
		p := NewCommand("", time.Second)

		if _, ok := p.Score(); ok {
			t.Error("expected no score without a configured command")
		}
	})
}

func TestNoneProvider(t *testing.T) {
	if _, ok := (None{}).Score(); ok {
		t.Error("expected None to report no score")
	}
}
