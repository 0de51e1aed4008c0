// Package identifier computes human-readable wardrobe item identifiers of the
// form category_type_sequence, e.g. "topwear_shirt_01".
package identifier

import (
	"fmt"
	"strconv"
	"strings"
)

// Next returns the next free identifier for a category/type pair given the
// set of identifiers already in use. It is a pure function: the caller
// supplies the current identifier universe (normally the permanent store's
// keys), so allocation is independent of the storage backend.
//
// Sequences start at 1 and are zero-padded to two digits; the width grows
// naturally once the sequence passes 99. Identifiers are only ever counted
// forward, so a discarded reservation is never handed out again as long as
// it remains in the universe.
func Next(category, itemType string, existing map[string]struct{}) string {
	prefix := category + "_" + itemType + "_"

	maxSeq := 0
	for id := range existing {
		seq, ok := parseSequence(id, prefix)
		if !ok {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}

	return fmt.Sprintf("%s%02d", prefix, maxSeq+1)
}

// parseSequence extracts the sequence number from an identifier with the
// given prefix. Entries that don't end in a two-or-more-digit zero-padded
// integer are ignored rather than treated as errors.
func parseSequence(id, prefix string) (int, bool) {
	if !strings.HasPrefix(id, prefix) {
		return 0, false
	}

	suffix := id[len(prefix):]
	if len(suffix) < 2 {
		return 0, false
	}
	for _, c := range suffix {
		if c < '0' || c > '9' {
			return 0, false
		}
	}

	seq, err := strconv.Atoi(suffix)
	if err != nil {
		return 0, false
	}
	return seq, true
}
