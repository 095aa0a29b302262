package domain

import (
	"fmt"
	"strings"
)

// Difficulty grades puzzles from easiest to hardest.
type Difficulty int

const (
	Beginner Difficulty = iota
	Easy
	Medium
	Hard
	Expert
)

var difficultyNames = [...]string{"beginner", "easy", "medium", "hard", "expert"}

func (d Difficulty) String() string {
	if d < Beginner || d > Expert {
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
	return difficultyNames[d]
}

// ParseDifficulty maps a label to its Difficulty, case-insensitive.
func ParseDifficulty(s string) (Difficulty, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range difficultyNames {
		if s == name {
			return Difficulty(i), nil
		}
	}
	return Beginner, fmt.Errorf("unknown difficulty %q", s)
}

// Ceiling is the hardest difficulty a grid of the given size can
// actually demand. Small grids run out of logic long before expert.
func Ceiling(size int) Difficulty {
	switch size {
	case 4:
		return Easy
	case 6:
		return Medium
	default:
		return Expert
	}
}

// Strategy identifies a human solving technique.
type Strategy int

const (
	NakedSingle Strategy = iota
	HiddenSingle
	NakedPair
	PointingPair
	BoxLine
	Guessing
)

var strategyNames = [...]string{
	"naked_single", "hidden_single", "naked_pair", "pointing_pair", "box_line", "guessing",
}

func (s Strategy) String() string {
	if s < NakedSingle || s > Guessing {
		return fmt.Sprintf("strategy(%d)", int(s))
	}
	return strategyNames[s]
}

// Difficulty is the fixed technique-to-grade table: the hardest
// technique a puzzle needs determines its grade.
func (s Strategy) Difficulty() Difficulty {
	switch s {
	case NakedSingle:
		return Beginner
	case HiddenSingle:
		return Easy
	case NakedPair:
		return Medium
	case PointingPair, BoxLine:
		return Hard
	default:
		return Expert
	}
}
