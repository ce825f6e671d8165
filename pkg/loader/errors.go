package loader

import "fmt"

// UnsupportedFileError rejects a batch because one upload has an extension
// no parsing strategy exists for. Raised before any file is parsed.
type UnsupportedFileError struct {
	Name string
}

func (e *UnsupportedFileError) Error() string {
	return fmt.Sprintf("unsupported file type: %s", e.Name)
}

// ParseError wraps a parsing or fetching failure for a single named input.
// One failing input fails the whole batch.
type ParseError struct {
	Name string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("error processing %s: %v", e.Name, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// TooManyURLsError rejects a URL batch before any network fetch occurs.
type TooManyURLsError struct {
	Count int
	Max   int
}

func (e *TooManyURLsError) Error() string {
	return fmt.Sprintf("you can only process up to %d URLs at a time (got %d)", e.Max, e.Count)
}
