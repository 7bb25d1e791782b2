package layout

import (
	"errors"
	"fmt"
)

// 错误类别，可用 errors.Is 与对应的哨兵错误比较。
var (
	ErrInvalidQuantity  = errors.New("invalid quantity")
	ErrUnknownPaperType = errors.New("unknown paper type")
	ErrInvalidPaper     = errors.New("invalid paper configuration")
	ErrPaperMismatch    = errors.New("paper mismatch")
)

// Kind classifies a layout failure.
type Kind int

const (
	KindInvalidQuantity Kind = iota + 1
	KindUnknownPaperType
	KindInvalidPaper
	KindPaperMismatch
)

func (k Kind) String() string {
	switch k {
	case KindInvalidQuantity:
		return "INVALID_QUANTITY"
	case KindUnknownPaperType:
		return "UNKNOWN_PAPER_TYPE"
	case KindInvalidPaper:
		return "INVALID_PAPER"
	case KindPaperMismatch:
		return "PAPER_MISMATCH"
	default:
		return "UNKNOWN"
	}
}

// Error is the typed failure returned by the planner and builder.
type Error struct {
	Kind    Kind
	Message string
}

func newError(kind Kind, msg string) error {
	return &Error{Kind: kind, Message: msg}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is 让 *Error 与同类哨兵错误匹配。
func (e *Error) Is(target error) bool {
	switch target {
	case ErrInvalidQuantity:
		return e.Kind == KindInvalidQuantity
	case ErrUnknownPaperType:
		return e.Kind == KindUnknownPaperType
	case ErrInvalidPaper:
		return e.Kind == KindInvalidPaper
	case ErrPaperMismatch:
		return e.Kind == KindPaperMismatch
	}
	return false
}
