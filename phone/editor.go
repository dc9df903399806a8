package phone

import "strings"

const (
	// Prefix is the mandatory leading digit pair.
	Prefix = "09"
	// MaxDigits is the full national-number length including the prefix.
	MaxDigits = 11
)

// Editor models the mobile-number input between edit events. The zero value
// is an unfocused empty input; Focus seeds the prefix.
//
// Editor is not safe for concurrent use: it mirrors a single input element
// owned by one event loop.
type Editor struct {
	value string
	caret int
}

// NewEditor returns an empty, unfocused editor.
func NewEditor() *Editor {
	return &Editor{}
}

// Value returns the current input text.
func (e *Editor) Value() string {
	return e.value
}

// Caret returns the current cursor position in bytes. The value is all
// ASCII digits, so byte and rune positions coincide.
func (e *Editor) Caret() int {
	return e.caret
}

// Focus seeds an empty input with the prefix and moves the caret to the
// end. Focusing a non-empty input only re-pins the caret.
func (e *Editor) Focus() {
	if e.value == "" {
		e.value = Prefix
		e.caret = len(e.value)
		return
	}
	e.pinCaret()
}

// SetCaret moves the cursor. Positions inside the prefix are redirected to
// just after it.
func (e *Editor) SetCaret(pos int) {
	e.caret = pos
	e.pinCaret()
}

// KeyPress handles a single character key. Non-digit keys are suppressed
// and report false. Digits are inserted at the caret, subject to the length
// cap.
func (e *Editor) KeyPress(r rune) bool {
	if r < '0' || r > '9' {
		return false
	}
	e.seed()
	if len(e.value) >= MaxDigits {
		return false
	}
	e.pinCaret()
	e.value = e.value[:e.caret] + string(r) + e.value[e.caret:]
	e.caret++
	e.restore(e.value)
	return true
}

// Insert types each rune of s through KeyPress. Non-digits are dropped, as
// they would be for individual key presses.
func (e *Editor) Insert(s string) {
	for _, r := range s {
		e.KeyPress(r)
	}
}

// Backspace deletes the character before the caret. The edit is suppressed
// when it would touch the prefix.
func (e *Editor) Backspace() bool {
	e.seed()
	if e.caret <= len(Prefix) {
		e.pinCaret()
		return false
	}
	e.value = e.value[:e.caret-1] + e.value[e.caret:]
	e.caret--
	e.restore(e.value)
	return true
}

// Delete removes the character at the caret. The edit is suppressed when it
// would touch the prefix.
func (e *Editor) Delete() bool {
	e.seed()
	if e.caret < len(Prefix) {
		e.pinCaret()
		return false
	}
	if e.caret >= len(e.value) {
		return false
	}
	e.value = e.value[:e.caret] + e.value[e.caret+1:]
	e.restore(e.value)
	return true
}

// Apply replaces the whole input with raw text placed by an external edit
// (paste, autofill, drag-drop) and then restores the invariants. caret is
// the post-edit cursor position reported by the host input.
func (e *Editor) Apply(raw string, caret int) {
	prev := e.value
	e.caret = caret
	e.value = sanitize(raw, prev)
	e.pinCaret()
}

// seed establishes the prefix before the first edit on a never-focused
// input.
func (e *Editor) seed() {
	if e.value == "" {
		e.value = Prefix
		e.caret = len(e.value)
	}
}

// restore re-derives the canonical value from an intermediate edit result
// and re-pins the caret.
func (e *Editor) restore(next string) {
	prev := e.value
	e.value = sanitize(next, prev)
	e.pinCaret()
}

func (e *Editor) pinCaret() {
	if e.caret < len(Prefix) {
		e.caret = len(Prefix)
	}
	if e.caret > len(e.value) {
		e.caret = len(e.value)
	}
}

// sanitize maps an arbitrary post-edit string back into the canonical
// format. prev is the pre-edit value, used to recover the digits typed
// after the prefix when the edit destroyed the prefix itself.
func sanitize(next, prev string) string {
	digits := digitsOnly(next)
	if len(digits) < len(Prefix) && strings.HasPrefix(Prefix, digits) {
		// Too little left to tell prefix from payload: reset.
		return Prefix
	}

	if !strings.HasPrefix(digits, Prefix) {
		digits = Prefix + recoverTail(digits, prev)
	}

	if len(digits) > MaxDigits {
		digits = digits[:MaxDigits]
	}
	return digits
}

// recoverTail keeps the digits that were typed after the point where the
// prefix previously sat, located via the last occurrence of the prefix in
// the pre-edit value. When no alignment is possible the whole digit run is
// treated as payload.
func recoverTail(digits, prev string) string {
	i := strings.LastIndex(prev, Prefix)
	if i < 0 {
		return digits
	}
	suffix := digitsOnly(prev[i+len(Prefix):])
	if suffix != "" && strings.HasSuffix(digits, suffix) {
		return suffix
	}
	return digits
}

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
