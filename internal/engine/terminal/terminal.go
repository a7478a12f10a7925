// Package terminal reads single key presses from a raw-mode terminal and
// reports them as per-frame key edges.
package terminal

import (
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/Faultbox/midgard-props/internal/engine/keys"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// GetSize returns the current terminal width and height.
// Falls back to defaults if the size cannot be determined.
func GetSize() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// Terminals report auto-repeat instead of releases. A key counts as held
// from its first byte until its bytes stop: RepeatDelay covers the pause
// before auto-repeat starts, RepeatGap the spacing between repeats.
const (
	RepeatDelay = 550 * time.Millisecond
	RepeatGap   = 100 * time.Millisecond
)

// escDelay is how long a lone ESC waits for the rest of a sequence before it
// counts as the Escape key.
const escDelay = 50 * time.Millisecond

// chunk is one Read from the terminal and when it arrived.
type chunk struct {
	data []byte
	at   time.Time
}

// hold is a key currently treated as down.
type hold struct {
	last      time.Time
	repeating bool
}

// Keyboard turns bytes from a terminal into per-frame key edges and holds.
type Keyboard struct {
	chunks chan chunk
	keys   *keys.State
	dec    decoder
	down   map[string]*hold
	now    func() time.Time
	closed bool

	fd    int
	state *term.State
}

// Open puts stdin into raw mode, if it is a terminal, and starts reading it.
// Close restores the terminal.
func Open() (*Keyboard, error) {
	fd := int(os.Stdin.Fd())

	var state *term.State
	if term.IsTerminal(fd) {
		var err error
		state, err = term.MakeRaw(fd)
		if err != nil {
			return nil, err
		}
	}

	k := NewKeyboard(os.Stdin)
	k.fd = fd
	k.state = state
	return k, nil
}

// NewKeyboard reads key presses from r until it returns an error.
func NewKeyboard(r io.Reader) *Keyboard {
	k := newKeyboard(time.Now)
	go k.read(r)
	return k
}

func newKeyboard(now func() time.Time) *Keyboard {
	return &Keyboard{
		chunks: make(chan chunk, 64),
		keys:   keys.New(),
		down:   make(map[string]*hold),
		now:    now,
		fd:     -1,
	}
}

func (k *Keyboard) read(r io.Reader) {
	defer close(k.chunks)

	buf := make([]byte, 16)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			k.chunks <- chunk{data: append([]byte(nil), buf[:n]...), at: k.now()}
		}
		if err != nil {
			return
		}
	}
}

// Poll starts a new frame and applies every byte read since the last Poll.
func (k *Keyboard) Poll() {
	k.keys.BeginFrame()

	for drained := false; !drained; {
		select {
		case c, ok := <-k.chunks:
			if !ok {
				k.closed = true
				drained = true
				break
			}
			for _, name := range k.dec.feed(c.data, c.at) {
				k.press(name, c.at)
			}
		default:
			drained = true
		}
	}

	now := k.now()
	if k.closed {
		now = now.Add(escDelay)
	}
	if name, ok := k.dec.flush(now); ok {
		k.press(name, now)
	}
	k.release(now)
}

// press records one decoded key. A key that is already held is an auto-repeat
// and only extends the hold.
func (k *Keyboard) press(name string, at time.Time) {
	name = keys.Normalize(name)
	if h, ok := k.down[name]; ok {
		if !expired(h, at) {
			h.last = at
			h.repeating = true
			return
		}
		k.keys.Up(name)
	}
	k.down[name] = &hold{last: at}
	k.keys.Down(name)
}

// release lets go of keys whose bytes have stopped.
func (k *Keyboard) release(now time.Time) {
	for name, h := range k.down {
		if expired(h, now) {
			delete(k.down, name)
			k.keys.Up(name)
		}
	}
}

func expired(h *hold, now time.Time) bool {
	limit := RepeatDelay
	if h.repeating {
		limit = RepeatGap
	}
	return now.Sub(h.last) > limit
}

// WasPressedThisFrame reports whether name went down during the last Poll.
func (k *Keyboard) WasPressedThisFrame(name string) bool {
	return k.keys.WasPressedThisFrame(name)
}

// IsHeld reports whether name is being held, judged by auto-repeat.
func (k *Keyboard) IsHeld(name string) bool {
	return k.keys.IsHeld(name)
}

// Pressed returns the keys that went down during the last Poll.
func (k *Keyboard) Pressed() []string {
	return k.keys.Pressed()
}

// Closed reports whether the input stream has ended.
func (k *Keyboard) Closed() bool {
	return k.closed
}

// Close restores the terminal mode changed by Open.
func (k *Keyboard) Close() error {
	if k.state == nil {
		return nil
	}
	return term.Restore(k.fd, k.state)
}

// maxPending bounds an escape sequence that never terminates.
const maxPending = 32

// decoder carries an unfinished escape sequence from one Read to the next.
type decoder struct {
	pending []byte
	since   time.Time
}

func (d *decoder) feed(data []byte, at time.Time) []string {
	names, rest := decode(append(d.pending, data...))
	if len(rest) > maxPending {
		rest = nil
	}
	if len(rest) <= len(data) {
		// the sequence started in this read
		d.since = at
	}
	d.pending = append([]byte(nil), rest...)
	return names
}

// flush gives up on a pending sequence that has waited escDelay and reports
// it as the Escape key.
func (d *decoder) flush(now time.Time) (string, bool) {
	if len(d.pending) == 0 || now.Sub(d.since) < escDelay {
		return "", false
	}
	d.pending = nil
	return "ESCAPE", true
}

// decode maps raw terminal bytes to key names. rest holds a trailing escape
// sequence that may continue in the next Read.
func decode(b []byte) (names []string, rest []byte) {
	for i := 0; i < len(b); i++ {
		c := b[i]
		if c != 0x1b {
			if name, ok := byteName(c); ok {
				names = append(names, name)
			}
			continue
		}
		if i+1 == len(b) {
			return names, b[i:]
		}

		switch b[i+1] {
		case '[':
			// CSI: parameter and intermediate bytes, then a final byte in 0x40-0x7e.
			j := i + 2
			for j < len(b) && (b[j] < 0x40 || b[j] > 0x7e) {
				j++
			}
			if j == len(b) {
				return names, b[i:]
			}
			if name, ok := arrows[b[j]]; ok {
				names = append(names, name)
			}
			i = j
		case 'O':
			if i+2 == len(b) {
				return names, b[i:]
			}
			if name, ok := arrows[b[i+2]]; ok {
				names = append(names, name)
			}
			i += 2
		default:
			names = append(names, "ESCAPE")
		}
	}
	return names, nil
}

func byteName(c byte) (string, bool) {
	switch {
	case c == 0x03:
		return "CTRL+C", true
	case c == '\r' || c == '\n':
		return "ENTER", true
	case c == ' ':
		return "SPACE", true
	case c >= 0x21 && c < 0x7f:
		return keys.Normalize(string(rune(c))), true
	}
	return "", false
}

var arrows = map[byte]string{
	'A': "UP",
	'B': "DOWN",
	'C': "RIGHT",
	'D': "LEFT",
}
