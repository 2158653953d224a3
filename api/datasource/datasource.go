package datasource

import (
	"context"

	"github.com/ka2n/postview/api/record"
)

// DataSource is the capability a list controller depends on for its records
type DataSource interface {
	// FetchAll retrieves every record, in the order the source provides them
	FetchAll(ctx context.Context) ([]record.Record, error)
}

// Kind names a DataSource implementation selectable by a caller
type Kind string

// String returns the string representation of the Kind
func (k Kind) String() string {
	return string(k)
}

const (
	// KindRemote fetches records over HTTP
	KindRemote Kind = "remote"
	// KindStatic serves a fixed set of records
	KindStatic Kind = "static"
)

// Kinds lists every supported Kind with a short description
func Kinds() map[Kind]string {
	return map[Kind]string{
		KindRemote: "HTTP GET of a JSON array of records",
		KindStatic: "fixed records, built in or loaded from a fixture file",
	}
}

// KindFromString parses s, reporting whether it names a supported Kind
func KindFromString(s string) (Kind, bool) {
	k := Kind(s)
	_, ok := Kinds()[k]
	return k, ok
}
