package hdkey

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip32"
)

// HardenedKeyStart is the index offset marking hardened children
const HardenedKeyStart = bip32.FirstHardenedChild

var (
	// ErrNullDerivationPath is returned for empty paths
	ErrNullDerivationPath = errors.New("derivation path must not be null")
	// ErrMalformedDerivationPath is returned for empty elements or a bare "m"
	ErrMalformedDerivationPath = errors.New(
		"path must not start or end with a '/' and " +
			"can optionally start with 'm/' for absolute paths",
	)
	// ErrInvalidDerivationPath is returned for non-numeric or out of range elements
	ErrInvalidDerivationPath = errors.New("invalid derivation path")
	// ErrAbsolutePathOnChild is returned when an m/... path is derived below the master node
	ErrAbsolutePathOnChild = errors.New("absolute derivation path on a child node")
)

// DerivationPath is the binary representation of a BIP-32 path
type DerivationPath []uint32

// ParseDerivationPath converts m/44'/60'/0'/0/0 style paths to their binary
// representation. Both ' and h mark hardened elements.
func ParseDerivationPath(strPath string) (DerivationPath, error) {
	strPath = strings.TrimSpace(strPath)
	if strPath == "" {
		return nil, ErrNullDerivationPath
	}

	elems := strings.Split(strPath, "/")
	if strings.TrimSpace(elems[0]) == "m" {
		elems = elems[1:]
	}
	if len(elems) == 0 {
		return nil, ErrMalformedDerivationPath
	}

	path := make(DerivationPath, 0, len(elems))
	for _, elem := range elems {
		elem = strings.TrimSpace(elem)
		if elem == "" {
			return nil, ErrMalformedDerivationPath
		}

		var offset uint32
		if strings.HasSuffix(elem, "'") || strings.HasSuffix(elem, "h") {
			offset = HardenedKeyStart
			elem = strings.TrimSpace(elem[:len(elem)-1])
		}

		value, ok := new(big.Int).SetString(elem, 10)
		if !ok {
			return nil, errors.Wrapf(ErrInvalidDerivationPath, "invalid elem '%s'", elem)
		}

		limit := int64(math.MaxUint32)
		if offset > 0 {
			limit = int64(HardenedKeyStart) - 1
		}
		if value.Sign() < 0 || value.Cmp(big.NewInt(limit)) > 0 {
			return nil, errors.Wrapf(ErrInvalidDerivationPath, "elem %v must be in range [0, %d]", value, limit)
		}

		path = append(path, offset+uint32(value.Uint64()))
	}

	return path, nil
}

// String renders the canonical m/... representation
func (p DerivationPath) String() string {
	if len(p) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("m")
	for _, component := range p {
		if component >= HardenedKeyStart {
			fmt.Fprintf(&sb, "/%d'", component-HardenedKeyStart)
			continue
		}
		fmt.Fprintf(&sb, "/%d", component)
	}

	return sb.String()
}

// Child returns a copy of the path with index appended
func (p DerivationPath) Child(index uint32) DerivationPath {
	child := make(DerivationPath, len(p), len(p)+1)
	copy(child, p)
	return append(child, index)
}
