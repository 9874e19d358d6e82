package codec

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ssargent/basekit/pkg/base16"
	"github.com/ssargent/basekit/pkg/base32"
	"github.com/ssargent/basekit/pkg/base64"
)

// TextCodec is a binary-to-text encoding selectable by name.
type TextCodec interface {
	Name() string
	EncodedLen(n int) int
	EncodeToString(src []byte) string
	DecodeString(s string) ([]byte, error)
}

type hexCodec struct{}

func (hexCodec) Name() string                          { return "hex" }
func (hexCodec) EncodedLen(n int) int                  { return base16.EncodedLen(n) }
func (hexCodec) EncodeToString(src []byte) string      { return base16.EncodeToString(src) }
func (hexCodec) DecodeString(s string) ([]byte, error) { return base16.DecodeString(s) }

var registry = map[string]TextCodec{
	"hex":       hexCodec{},
	"base16":    hexCodec{},
	"base32":    base32.StdEncoding,
	"base32hex": base32.HexEncoding,
	"base64":    base64.StdEncoding,
	"base64url": base64.URLEncoding,
}

// Lookup returns the codec registered under name, ignoring case.
func Lookup(name string) (TextCodec, error) {
	c, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown encoding %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return c, nil
}

// Names returns the registered codec names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
