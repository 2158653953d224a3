package sourceimpl

type ErrorCode string

const (
	// ErrNetwork represents transport failures: connection, request or body read errors
	ErrNetwork ErrorCode = "Network"

	// ErrDecode represents a response body that is not a JSON array of records
	ErrDecode ErrorCode = "Decode"

	ErrInvalidURL ErrorCode = "InvalidURL"

	ErrFixture ErrorCode = "Fixture"
)

func (c ErrorCode) ErrorCode() string {
	return string(c)
}
