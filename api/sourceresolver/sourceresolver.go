package sourceresolver

import (
	"github.com/ka2n/postview/api/datasource"
	"github.com/ka2n/postview/api/sourceimpl"
	"github.com/morikuni/failure/v2"
)

// ErrUnsupportedKind is returned for a Kind with no implementation
const ErrUnsupportedKind sourceimpl.ErrorCode = "UnsupportedKind"

// Options carries what a caller knows about the source it wants
type Options struct {
	Kind datasource.Kind

	// URL is used by KindRemote; sourceimpl.DefaultURL when empty
	URL string

	// Fixture is an optional JSON file for KindStatic
	Fixture string
}

// DataSource builds the DataSource described by opts
func DataSource(opts Options) (datasource.DataSource, error) {
	switch opts.Kind {
	case datasource.KindRemote, "":
		u := opts.URL
		if u == "" {
			u = sourceimpl.DefaultURL
		}
		return sourceimpl.NewRemoteDataSource(u)
	case datasource.KindStatic:
		if opts.Fixture != "" {
			return sourceimpl.NewStaticDataSourceFromFile(opts.Fixture)
		}
		return sourceimpl.NewStaticDataSource(nil), nil
	default:
		return nil, failure.New(ErrUnsupportedKind,
			failure.Message("Unsupported data source"),
			failure.Context{"kind": opts.Kind.String()},
		)
	}
}
