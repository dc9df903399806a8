package strength

import "strings"

// Tier is one of five ordinal password-quality buckets.
type Tier int

const (
	// VeryWeak covers empty input and scores below 3.
	VeryWeak Tier = iota
	// Weak covers scores below 5.
	Weak
	// Medium covers scores below 7.
	Medium
	// Strong covers scores below 9.
	Strong
	// Excellent covers scores of 9 and above.
	Excellent
)

// String returns the UI label for the tier.
func (t Tier) String() string {
	switch t {
	case VeryWeak:
		return "Very Weak"
	case Weak:
		return "Weak"
	case Medium:
		return "Medium"
	case Strong:
		return "Strong"
	case Excellent:
		return "Excellent"
	default:
		return "Very Weak"
	}
}

// Symbols mirrors the punctuation set accepted by the validation rules.
const Symbols = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

// Result is the evaluator output for one keystroke.
type Result struct {
	Tier    Tier
	Percent int
	// Label is the gauge caption: the tier name, or the empty-input
	// placeholder prompt.
	Label string
}

// Score evaluates a password into a tier and a gauge percentage. It is pure
// and is expected to run on every keystroke alongside validation.
func Score(password string) Result {
	if password == "" {
		return Result{Tier: VeryWeak, Percent: 0, Label: "Type password..."}
	}

	score := 0
	if strings.ContainsFunc(password, func(r rune) bool { return r >= 'a' && r <= 'z' }) {
		score++
	}
	if strings.ContainsFunc(password, func(r rune) bool { return r >= 'A' && r <= 'Z' }) {
		score++
	}
	if strings.ContainsFunc(password, func(r rune) bool { return r >= '0' && r <= '9' }) {
		score++
	}
	if strings.ContainsAny(password, Symbols) {
		score += 2
	}

	if len(password) >= 8 {
		score += 2
	}
	if len(password) >= 12 {
		score += 2
	}
	if len(password) >= 16 {
		score += 2
	}

	// Below the minimum accepted length nothing else counts.
	if len(password) < 6 {
		score = 0
	}

	tier := tierFor(score)
	return Result{
		Tier:    tier,
		Percent: (int(tier) + 1) * 20,
		Label:   tier.String(),
	}
}

func tierFor(score int) Tier {
	switch {
	case score < 3:
		return VeryWeak
	case score < 5:
		return Weak
	case score < 7:
		return Medium
	case score < 9:
		return Strong
	default:
		return Excellent
	}
}
