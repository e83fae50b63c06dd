package pipeline

import "errors"

var (
	// ErrInputRequired means newsInput was missing or blank.
	ErrInputRequired = errors.New("news input is required")
	// ErrInvalidInputType means inputType was neither "text" nor "url".
	ErrInvalidInputType = errors.New(`input type must be "text" or "url"`)
	// ErrAcquisition means no usable article text could be obtained.
	ErrAcquisition = errors.New("content acquisition failed")
	// ErrExtraction means the original article could not be summarized.
	ErrExtraction = errors.New("original analysis failed")
)
