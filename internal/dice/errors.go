package dice

import (
	"errors"
	"fmt"
	"strings"
)

// Code is the stable token callers may match on; it is rendered in brackets at
// the start of every error message.
type Code string

const (
	CodeUnparseableInput      Code = "UNPARSEABLE_INPUT"
	CodeOutOfScopeSyntax      Code = "OUT_OF_SCOPE_SYNTAX"
	CodeInvalidDie            Code = "INVALID_DIE"
	CodeInvalidAdvantageUsage Code = "INVALID_ADVANTAGE_USAGE"
)

// Sentinels for errors.Is; any *Error with the same Code matches.
var (
	ErrUnparseableInput      = &Error{Code: CodeUnparseableInput}
	ErrOutOfScopeSyntax      = &Error{Code: CodeOutOfScopeSyntax}
	ErrInvalidDie            = &Error{Code: CodeInvalidDie}
	ErrInvalidAdvantageUsage = &Error{Code: CodeInvalidAdvantageUsage}
)

// Error is a user-facing rejection. It is always raised before any die is rolled.
type Error struct {
	Code    Code
	Message string

	// Examples are requests that would have been accepted.
	Examples []string
}

// Error renders "[CODE] message Example: 'a' or 'b'.".
func (e *Error) Error() string {
	s := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if len(e.Examples) > 0 {
		s += fmt.Sprintf(" Example: '%s'.", strings.Join(e.Examples, "' or '"))
	}
	return s
}

// Is matches any *Error carrying the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// CodeOf returns the Code carried by err, or "" when err is not a dice error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func errEmptyInput() error {
	return &Error{
		Code:     CodeUnparseableInput,
		Message:  "Empty input.",
		Examples: []string{"2d6 + 3", "d20 with advantage +5"},
	}
}

func errModeConflict() error {
	return &Error{
		Code:     CodeUnparseableInput,
		Message:  "Found both 'advantage' and 'disadvantage'. Use only one.",
		Examples: []string{"d20 with advantage +3"},
	}
}

func errOutOfScope() error {
	return &Error{
		Code:     CodeOutOfScopeSyntax,
		Message:  "Only + and - are supported (no *, /, or parentheses).",
		Examples: []string{"2d10 + 2d4 + 4"},
	}
}

func errInvalidDie(token string) error {
	return &Error{
		Code:     CodeInvalidDie,
		Message:  fmt.Sprintf("Die '%s' is not supported; only d4, d6, d8, d10, d12, d20 and d100 are.", token),
		Examples: []string{"2d10 + 2d4 + 4"},
	}
}

func errDiceCount(token string) error {
	return &Error{
		Code:     CodeUnparseableInput,
		Message:  fmt.Sprintf("Dice count in '%s' must be between 1 and %d.", token, MaxDiceCount),
		Examples: []string{"2d6 + 3"},
	}
}

func errConstantRange(token string) error {
	return &Error{
		Code:     CodeUnparseableInput,
		Message:  fmt.Sprintf("Modifier '%s' is larger than %d.", token, MaxConstant),
		Examples: []string{"2d6 + 3"},
	}
}

func errTooManyTerms() error {
	return &Error{
		Code:     CodeUnparseableInput,
		Message:  fmt.Sprintf("At most %d dice groups and modifiers per roll.", MaxTerms),
		Examples: []string{"2d10 + 2d4 + 4"},
	}
}

func errUnknownToken(token string) error {
	return &Error{
		Code:     CodeUnparseableInput,
		Message:  fmt.Sprintf("Could not understand token '%s'.", token),
		Examples: []string{"2d6 + 3", "d20 with advantage +5"},
	}
}

func errNoTerms() error {
	return &Error{
		Code:     CodeUnparseableInput,
		Message:  "No dice or modifiers found.",
		Examples: []string{"d20", "2d6 + 3"},
	}
}

func errAdvantageUsage() error {
	return &Error{
		Code:     CodeInvalidAdvantageUsage,
		Message:  "Advantage/disadvantage requires exactly one added 'd20' (or '1d20') term.",
		Examples: []string{"d20 with advantage +3"},
	}
}
