package codec

import (
	"fmt"
	"io"
	"time"

	"hostident/internal/machine"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles YAML export
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// ContentType returns the MIME type
func (c *YAMLCodec) ContentType() string {
	return "application/yaml"
}

// yamlIdentity is the YAML document layout. Addresses are grouped per family.
type yamlIdentity struct {
	Hostname string      `yaml:"hostname"`
	Primary  yamlAddress `yaml:"primary"`
	IPv4     yamlFamily  `yaml:"ipv4"`
	IPv6     yamlFamily  `yaml:"ipv6"`
	Source   string      `yaml:"source"`
	Resolved string      `yaml:"resolved_at"`
}

type yamlAddress struct {
	Text string `yaml:"text"`
	Hex  string `yaml:"hex"`
}

type yamlFamily struct {
	Address string `yaml:"address,omitempty"`
	Rank    string `yaml:"rank"`
}

// Export writes the identity as YAML
func (c *YAMLCodec) Export(id machine.Identity, w io.Writer) error {
	doc := yamlIdentity{
		Hostname: id.Hostname,
		Primary: yamlAddress{
			Text: id.AddressText,
			Hex:  id.AddressHexText,
		},
		IPv4:     yamlFamily{Rank: id.IPv4Rank.String()},
		IPv6:     yamlFamily{Rank: id.IPv6Rank.String()},
		Source:   id.Source,
		Resolved: id.ResolvedAt.UTC().Format(time.RFC3339),
	}
	if id.HasIPv4() {
		doc.IPv4.Address = id.IPv4.String()
	}
	if id.HasIPv6() {
		doc.IPv6.Address = id.IPv6.String()
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
