package bytecode

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"
)

// cacheExt is the on-disk extension for a cached Code, chosen to not
// collide with any source or build artifact extension.
const cacheExt = ".dwoc"

// CacheKey hashes source text to the hex key a cache entry is filed
// under. Two sources that hash the same are treated as the same
// program; this is a memoization key, not a content-addressed store
// with collision resistance guarantees beyond what blake2b provides.
func CacheKey(source []byte) string {
	sum := blake2b.Sum256(source)
	return hex.EncodeToString(sum[:])
}

// cachePath joins dir and key into the .dwoc file path for key.
func cachePath(dir, key string) string {
	return filepath.Join(dir, key+cacheExt)
}

// LoadCache reads and decodes the cached Code for key from dir. It
// returns ok=false (no error) if no cache entry exists yet — a cache
// miss is the expected, common case, not a failure.
func LoadCache(dir, key string) (code *Code, ok bool, err error) {
	data, err := os.ReadFile(cachePath(dir, key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("bytecode: reading cache entry: %w", err)
	}
	var c Code
	if err := cbor.Unmarshal(data, &c); err != nil {
		return nil, false, fmt.Errorf("bytecode: decoding cache entry: %w", err)
	}
	return &c, true, nil
}

// SaveCache cbor-encodes code and writes it to dir under key,
// creating dir if necessary. Code's fields are all exported and
// Value is a plain uint64 newtype, so no mirror struct is needed for
// the encoding.
func SaveCache(dir, key string, code *Code) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("bytecode: creating cache directory: %w", err)
	}
	data, err := cbor.Marshal(code)
	if err != nil {
		return fmt.Errorf("bytecode: encoding cache entry: %w", err)
	}
	if err := os.WriteFile(cachePath(dir, key), data, 0o644); err != nil {
		return fmt.Errorf("bytecode: writing cache entry: %w", err)
	}
	return nil
}
