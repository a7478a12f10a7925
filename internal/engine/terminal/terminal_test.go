package terminal

import (
	"strings"
	"testing"
	"time"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		in   string
		want []string
		rest string
	}{
		{"e", []string{"E"}, ""},
		{"wasd", []string{"W", "A", "S", "D"}, ""},
		{"\x1b[A\x1b[D", []string{"UP", "LEFT"}, ""},
		{"\x1bOB", []string{"DOWN"}, ""},
		{" \r\x03", []string{"SPACE", "ENTER", "CTRL+C"}, ""},
		{"\x00\x7f", nil, ""},

		// unfinished sequences wait for the next read
		{"\x1b", nil, "\x1b"},
		{"w\x1b[", []string{"W"}, "\x1b["},
		{"\x1b[1;5", nil, "\x1b[1;5"},
		{"\x1bO", nil, "\x1bO"},

		// unknown CSI sequences are skipped whole
		{"\x1b[5~e", []string{"E"}, ""},
		{"\x1b[1;5C", []string{"RIGHT"}, ""},
		{"\x1b[15;2~\x1b[B", []string{"DOWN"}, ""},

		// ESC followed by an ordinary byte
		{"\x1bq", []string{"ESCAPE", "Q"}, ""},
	}

	for _, tt := range tests {
		got, rest := decode([]byte(tt.in))
		if string(rest) != tt.rest {
			t.Errorf("decode(%q) rest = %q, want %q", tt.in, rest, tt.rest)
		}
		if len(got) != len(tt.want) {
			t.Errorf("decode(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("decode(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestDecoderSplitSequence(t *testing.T) {
	var d decoder
	t0 := time.Unix(0, 0)

	if got := d.feed([]byte("\x1b"), t0); len(got) != 0 {
		t.Fatalf("lone ESC decoded early: %v", got)
	}
	if _, ok := d.flush(t0.Add(10 * time.Millisecond)); ok {
		t.Fatal("ESC flushed before the rest of the sequence could arrive")
	}
	got := d.feed([]byte("[A"), t0.Add(5*time.Millisecond))
	if len(got) != 1 || got[0] != "UP" {
		t.Fatalf("split arrow = %v, want [UP]", got)
	}
	if _, ok := d.flush(t0.Add(time.Second)); ok {
		t.Error("nothing should be pending after a complete sequence")
	}
}

func TestDecoderFlushesLoneEscape(t *testing.T) {
	var d decoder
	t0 := time.Unix(0, 0)

	d.feed([]byte("\x1b"), t0)
	name, ok := d.flush(t0.Add(escDelay))
	if !ok || name != "ESCAPE" {
		t.Fatalf("flush = %q, %v, want ESCAPE", name, ok)
	}
	if got := d.feed([]byte("e"), t0.Add(escDelay)); len(got) != 1 || got[0] != "E" {
		t.Errorf("after flush got %v, want [E]", got)
	}
}

func TestHeldKeyPressesOnce(t *testing.T) {
	t0 := time.Unix(0, 0)
	now := t0
	k := newKeyboard(func() time.Time { return now })

	step := func(offset time.Duration, data string) {
		now = t0.Add(offset)
		if data != "" {
			k.chunks <- chunk{data: []byte(data), at: now}
		}
		k.Poll()
	}

	step(0, "e")
	if !k.WasPressedThisFrame("E") {
		t.Fatal("first E should be a press")
	}

	// auto-repeat starts after the initial delay
	for _, at := range []time.Duration{500, 530, 560, 590} {
		step(at*time.Millisecond, "e")
		if k.WasPressedThisFrame("E") {
			t.Fatalf("repeat at %dms counted as a press", at)
		}
		if !k.IsHeld("E") {
			t.Fatalf("E not held at %dms", at)
		}
	}

	step(650*time.Millisecond, "")
	if !k.IsHeld("E") {
		t.Error("E released inside the repeat gap")
	}

	step(800*time.Millisecond, "")
	if k.IsHeld("E") {
		t.Error("E still held after repeats stopped")
	}

	step(900*time.Millisecond, "e")
	if !k.WasPressedThisFrame("E") {
		t.Error("E after release should be a new press")
	}
}

func TestTapReleasesAfterDelay(t *testing.T) {
	t0 := time.Unix(0, 0)
	now := t0
	k := newKeyboard(func() time.Time { return now })

	k.chunks <- chunk{data: []byte("w"), at: now}
	k.Poll()
	if !k.IsHeld("W") {
		t.Fatal("W should be held right after its byte")
	}

	now = t0.Add(RepeatDelay + time.Millisecond)
	k.Poll()
	if k.IsHeld("W") {
		t.Error("W should be released once no repeat arrives")
	}
}

func TestKeyboardPoll(t *testing.T) {
	k := NewKeyboard(strings.NewReader("e"))

	deadline := time.Now().Add(2 * time.Second)
	for !k.Closed() && time.Now().Before(deadline) {
		k.Poll()
		if k.WasPressedThisFrame("E") {
			break
		}
		time.Sleep(time.Millisecond)
	}
	if !k.WasPressedThisFrame("e") {
		t.Fatal("expected E to be pressed")
	}

	// next frame without new input
	k.Poll()
	if k.WasPressedThisFrame("E") {
		t.Error("key should only be pressed for one frame")
	}
}

func TestKeyboardClosesOnEOF(t *testing.T) {
	k := NewKeyboard(strings.NewReader(""))

	deadline := time.Now().Add(2 * time.Second)
	for !k.Closed() && time.Now().Before(deadline) {
		k.Poll()
		time.Sleep(time.Millisecond)
	}
	if !k.Closed() {
		t.Error("expected keyboard to close after EOF")
	}
	if err := k.Close(); err != nil {
		t.Errorf("Close() on a non-terminal should be a no-op, got %v", err)
	}
}
