// Package clean implements the population dataset cleaning stages.
//
// Each stage takes a *dataset.Dataset and returns a new one together with
// the diagnostic counts it measured; inputs are never modified. Run chains
// the stages in their required order:
//
//	RemoveDuplicates -> Impute -> Recode -> NormalizeYears
package clean

import (
	"encoding/binary"
	"math"

	"github.com/zeebo/xxh3"

	"github.com/KaramelBytes/popclean-cli/internal/dataset"
)

// RemoveDuplicates drops rows equal in every column to an earlier row,
// keeping the first occurrence and the input order. It returns the new
// dataset and the number of rows removed.
func RemoveDuplicates(d *dataset.Dataset) (*dataset.Dataset, int) {
	out := &dataset.Dataset{
		Name:    d.Name,
		Columns: append([]string(nil), d.Columns...),
		Rows:    make([]dataset.Record, 0, len(d.Rows)),
	}
	// Buckets hold indexes into out.Rows; equal hashes are confirmed cell by cell.
	seen := make(map[uint64][]int, len(d.Rows))
	var key []byte
	for _, r := range d.Rows {
		key = appendRowKey(key[:0], r)
		h := xxh3.Hash(key)
		dup := false
		for _, k := range seen[h] {
			if sameRecord(out.Rows[k], r) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		seen[h] = append(seen[h], len(out.Rows))
		out.Rows = append(out.Rows, append(dataset.Record(nil), r...))
	}
	return out, len(d.Rows) - len(out.Rows)
}

// appendRowKey encodes r so that cells which compare Equal encode identically.
func appendRowKey(dst []byte, r dataset.Record) []byte {
	for _, c := range r {
		dst = append(dst, byte(c.Kind))
		switch c.Kind {
		case dataset.Number:
			v := c.Num
			switch {
			case math.IsNaN(v):
				v = math.NaN()
			case v == 0:
				v = 0 // fold -0
			}
			dst = binary.LittleEndian.AppendUint64(dst, math.Float64bits(v))
		case dataset.Text:
			dst = binary.AppendUvarint(dst, uint64(len(c.Str)))
			dst = append(dst, c.Str...)
		}
	}
	return dst
}

func sameRecord(a, b dataset.Record) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
