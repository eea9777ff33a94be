package codec

import (
	"io"

	"atelier/internal/domain"
)

// Exporter writes a full data snapshot in one output format.
type Exporter interface {
	Export(snap *domain.Snapshot, w io.Writer) error
	Format() string
}

// ForFormat returns the exporter for a format identifier, or nil for an
// unknown format.
func ForFormat(format string) Exporter {
	switch format {
	case "json":
		return NewJSONCodec()
	case "yaml", "yml":
		return NewYAMLCodec()
	default:
		return nil
	}
}
