package spreadsheet

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid xlsx package.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrSheetNotFound indicates no sheet has the requested name.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrNoDrawingPart indicates drawing objects were added to a sheet that has
// no drawing part to hold them.
var ErrNoDrawingPart = errors.New("sheet has no drawing part")

// PartError represents an error reading or writing a package part.
type PartError struct {
	Part      string
	Component string // "workbook", "worksheet", "drawing", "chart", "embedding"
	Err       error
}

func (e *PartError) Error() string {
	return fmt.Sprintf("%s part %q: %v", e.Component, e.Part, e.Err)
}

func (e *PartError) Unwrap() error {
	return e.Err
}

// NewPartError creates a new PartError.
func NewPartError(part, component string, err error) *PartError {
	return &PartError{
		Part:      part,
		Component: component,
		Err:       err,
	}
}
