package game

import (
	"fmt"
	"strconv"
	"strings"
)

// MPOpKind tags the variant held by an MPOp.
type MPOpKind int

const (
	MPRelative MPOpKind = iota
	MPResetToMax
)

// MPOp is a parsed MP adjustment: either a signed delta or a reset to max.
type MPOp struct {
	Kind  MPOpKind
	Delta int // only for MPRelative
}

// String returns the label shown to players, e.g. "+5", "-20" or "max".
func (op MPOp) String() string {
	if op.Kind == MPResetToMax {
		return "max"
	}
	return fmt.Sprintf("%+d", op.Delta)
}

// Relative returns an MPOp that adds delta (negative to spend).
func Relative(delta int) MPOp {
	return MPOp{Kind: MPRelative, Delta: delta}
}

// ResetToMax returns an MPOp that refills the pool.
func ResetToMax() MPOp {
	return MPOp{Kind: MPResetToMax}
}

// ParseMPOp parses "max", "+N" or "-N". A sign followed by something that is
// not an integer is a *ParseError; any other shape is ErrInvalidOperation.
func ParseMPOp(s string) (MPOp, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "max") {
		return ResetToMax(), nil
	}
	if s == "" || (s[0] != '+' && s[0] != '-') {
		return MPOp{}, fmt.Errorf("mp op %q: %w", s, ErrInvalidOperation)
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil || strings.ContainsAny(s[1:], "+-") {
		return MPOp{}, &ParseError{Input: s}
	}
	if s[0] == '-' {
		n = -n
	}
	return Relative(n), nil
}
