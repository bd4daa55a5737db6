package hdkey

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip32"
	"github/chapool/go-hdwallet/internal/wallet/seed"
)

const privateKeyLength = 32

// Tree is a node of a BIP-32 key tree. Trees are immutable, deriving returns
// new nodes and never touches the receiver.
type Tree struct {
	key  *bip32.Key
	path DerivationPath
}

// NewMasterTree creates the master node of the tree rooted at seed
func NewMasterTree(seedBytes []byte) (*Tree, error) {
	masterKey, err := bip32.NewMasterKey(seedBytes)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create master key")
	}

	return &Tree{key: masterKey, path: DerivationPath{}}, nil
}

// DeriveMasterKey validates phrase and returns the master node of its seed
func DeriveMasterKey(phrase string) (*Tree, error) {
	m, err := seed.NewMnemonic(phrase)
	if err != nil {
		return nil, err
	}

	return NewMasterTree(m.Seed(""))
}

// DerivePath parses path and derives the matching descendant. Absolute paths
// (m/...) are only accepted on the master node.
func (t *Tree) DerivePath(path string) (*Tree, error) {
	parsed, err := ParseDerivationPath(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse derivation path")
	}
	if isAbsolute(path) && len(t.path) > 0 {
		return nil, errors.Wrapf(ErrAbsolutePathOnChild, "%s from %s", path, t.path)
	}

	return t.Derive(parsed)
}

func isAbsolute(path string) bool {
	head, _, _ := strings.Cut(strings.TrimSpace(path), "/")
	return strings.TrimSpace(head) == "m"
}

// Derive walks the tree along path
func (t *Tree) Derive(path DerivationPath) (*Tree, error) {
	key := t.key
	for _, index := range path {
		child, err := key.NewChildKey(index)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to derive child key at index %d", index)
		}
		key = child
	}

	full := make(DerivationPath, 0, len(t.path)+len(path))
	full = append(full, t.path...)
	full = append(full, path...)

	return &Tree{key: key, path: full}, nil
}

// Path returns the path of the node relative to the master node
func (t *Tree) Path() DerivationPath {
	out := make(DerivationPath, len(t.path))
	copy(out, t.path)
	return out
}

// PrivateKey returns the 32 byte private key of the node
func (t *Tree) PrivateKey() []byte {
	raw := t.key.Key
	out := make([]byte, privateKeyLength)
	if len(raw) > privateKeyLength {
		raw = raw[len(raw)-privateKeyLength:]
	}
	copy(out[privateKeyLength-len(raw):], raw)
	return out
}

// PublicKey returns the compressed secp256k1 public key of the node
func (t *Tree) PublicKey() []byte {
	return t.key.PublicKey().Key
}

// String returns the base58 serialized extended private key
func (t *Tree) String() string {
	return t.key.B58Serialize()
}
