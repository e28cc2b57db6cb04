package badger

import (
	"fmt"

	"github.com/lampstand/sermonrec/core"
)

// Key prefixes for different data types
const (
	indexEntryPrefix = "sermvec"
)

// makeIndexEntryKey generates a key for an index entry by ID.
func makeIndexEntryKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", indexEntryPrefix, id))
}
