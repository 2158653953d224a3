package cli

import (
	"github.com/ka2n/postview/api/datasource"
	"github.com/morikuni/failure/v2"
	"github.com/spf13/pflag"
)

type sourceKindFlag struct {
	Value datasource.Kind
}

// String implements pflag.Value.
func (s *sourceKindFlag) String() string {
	return s.Value.String()
}

func (s *sourceKindFlag) Set(value string) error {
	kind, ok := datasource.KindFromString(value)
	if !ok {
		return failure.New(UnsupportedSource,
			failure.Message("Unsupported data source, see `postview sources`"),
			failure.Context{"source": value},
		)
	}
	s.Value = kind
	return nil
}

func (s *sourceKindFlag) Type() string {
	return "kind"
}

var _ pflag.Value = &sourceKindFlag{}
