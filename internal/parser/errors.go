package parser

import "fmt"

// ImportErrorCode represents specific import failure types.
type ImportErrorCode string

const (
	ErrNoParserMatched ImportErrorCode = "NO_PARSER_MATCHED"
	ErrUnreadableFile  ImportErrorCode = "UNREADABLE_FILE"
	ErrDateFormat      ImportErrorCode = "DATE_FORMAT"
	ErrAmountFormat    ImportErrorCode = "AMOUNT_FORMAT"
)

// ImportError is a structured error for import failures. Row-local codes
// (DATE_FORMAT, AMOUNT_FORMAT) are absorbed into ParseResult.Errors by the
// parsers; file-level codes propagate to the caller.
type ImportError struct {
	Code     ImportErrorCode
	Message  string
	Filename string
	Cause    error
}

func (e *ImportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *ImportError) Unwrap() error {
	return e.Cause
}

func newDateFormatError(value string) *ImportError {
	return &ImportError{Code: ErrDateFormat, Message: fmt.Sprintf("cannot parse date %q", value)}
}

func newAmountFormatError(value string) *ImportError {
	return &ImportError{Code: ErrAmountFormat, Message: fmt.Sprintf("cannot parse amount %q", value)}
}
