//    LDAWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lderr

import (
	"errors"
	"fmt"
)

//
// ERROR TAXONOMY
//

// none of these are transient: nothing here is ever retried

var (
	ErrParse                = errors.New("parse error")
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrShapeMismatch        = errors.New("shape mismatch")
	ErrLookup               = errors.New("lookup error")
)

// ParseError - a corpus path that does not yield a document identifier
type ParseError struct {
	Path   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrParse, e.Path, e.Reason)
}

func (e *ParseError) Unwrap() error { return ErrParse }

// ShapeMismatchError - a cached array whose dimensions disagree with the current corpus
type ShapeMismatchError struct {
	What  string
	WantR int
	WantC int
	GotR  int
	GotC  int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("%s: %s is %dx%d; expected %dx%d", ErrShapeMismatch, e.What, e.GotR, e.GotC, e.WantR, e.WantC)
}

func (e *ShapeMismatchError) Unwrap() error { return ErrShapeMismatch }

// AlignmentError - a cached array of the right shape whose rows or columns belong to other labels
type AlignmentError struct {
	What  string
	Index int
	Want  string
	Got   string
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf("%s: %s: label %d is %q; expected %q", ErrShapeMismatch, e.What, e.Index, e.Got, e.Want)
}

func (e *AlignmentError) Unwrap() error { return ErrShapeMismatch }

// LookupError - a topic or document that is not in the results
type LookupError struct {
	Kind string
	Key  string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s: no such %s: %s", ErrLookup, e.Kind, e.Key)
}

func (e *LookupError) Unwrap() error { return ErrLookup }

// Invalid - wrap ErrInvalidConfiguration with a formatted explanation
func Invalid(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, a...))
}
