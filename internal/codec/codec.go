package codec

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"hostident/internal/machine"
)

// ErrUnknownFormat is returned by ForFormat for unregistered formats
var ErrUnknownFormat = errors.New("unknown format")

// Exporter interface for exporting a machine identity to various formats
type Exporter interface {
	Export(id machine.Identity, w io.Writer) error
	Format() string
}

// ContentTyper is implemented by exporters that know their MIME type
type ContentTyper interface {
	ContentType() string
}

var exporters = map[string]Exporter{
	"json": NewJSONCodec(),
	"yaml": NewYAMLCodec(),
	"yml":  NewYAMLCodec(),
}

// ForFormat returns the exporter for name
func ForFormat(name string) (Exporter, error) {
	if name == "" {
		name = "json"
	}
	e, ok := exporters[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (supported: %v)", ErrUnknownFormat, name, Formats())
	}
	return e, nil
}

// Formats lists the registered format names
func Formats() []string {
	names := make([]string, 0, len(exporters))
	for name := range exporters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
