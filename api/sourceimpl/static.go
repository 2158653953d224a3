package sourceimpl

import (
	"context"
	"os"

	"github.com/ka2n/postview/api/datasource"
	"github.com/ka2n/postview/api/record"
	"github.com/morikuni/failure/v2"
)

// DefaultRecords are served by a StaticDataSource built without records
var DefaultRecords = []record.Record{
	{OwnerID: 1, ID: 1, Title: "One", Body: "One"},
	{OwnerID: 2, ID: 2, Title: "two", Body: "two"},
}

// StaticDataSource serves a fixed list of records and never fails
type StaticDataSource struct {
	records []record.Record
}

var _ datasource.DataSource = (*StaticDataSource)(nil)

// NewStaticDataSource returns a source serving records, or DefaultRecords when
// records is nil. An empty non-nil slice is served as is.
func NewStaticDataSource(records []record.Record) *StaticDataSource {
	if records == nil {
		records = DefaultRecords
	}
	return &StaticDataSource{records: record.Clone(records)}
}

// NewStaticDataSourceFromFile loads records from a JSON fixture file
func NewStaticDataSourceFromFile(path string) (*StaticDataSource, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, failure.Translate(err, ErrFixture,
			failure.Message("Failed to read fixture file"),
			failure.Context{"path": path},
		)
	}

	records, err := record.DecodeList(b)
	if err != nil {
		return nil, failure.Translate(err, ErrFixture,
			failure.Message("Fixture file is not a list of records"),
			failure.Context{"path": path},
		)
	}

	return NewStaticDataSource(records), nil
}

// FetchAll returns a copy of the configured records
func (s *StaticDataSource) FetchAll(ctx context.Context) ([]record.Record, error) {
	return record.Clone(s.records), nil
}
