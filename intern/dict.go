package intern

const dictTableSize = 43

// Dictionary deduplicates byte strings, keyed by (length, bytes) per
// spec.md §6, with ordered iteration backed by a bucket array of
// red-black trees and pointer-stable storage backed by a HashChunkArray.
type Dictionary struct {
	buckets []*RBTree[string, *Entry]
	storage *HashChunkArray
}

// NewDictionary creates an empty Dictionary.
func NewDictionary() *Dictionary {
	d := &Dictionary{
		buckets: make([]*RBTree[string, *Entry], dictTableSize),
		storage: NewHashChunkArray(),
	}

	for i := range d.buckets {
		d.buckets[i] = NewRBTree[string, *Entry]()
	}

	return d
}

func (d *Dictionary) bucketIndex(data []byte) int {
	return int(fnvHash(data) % uint64(dictTableSize))
}

// Intern deduplicates data, returning a pointer-stable entry shared by
// every caller that interns an equal byte string.
func (d *Dictionary) Intern(data []byte) *Entry {
	idx := d.bucketIndex(data)
	key := string(data)

	if e, ok := d.buckets[idx].Get(key); ok {
		return e
	}

	e, _ := d.storage.Intern(data)
	d.buckets[idx].Put(key, e)
	return e
}

// Len returns the number of distinct interned entries.
func (d *Dictionary) Len() int {
	n := 0
	for _, b := range d.buckets {
		n += b.Len()
	}
	return n
}

// Each visits every interned entry. Iteration is ordered within each
// bucket (lexicographic) but buckets themselves are visited in hash-table
// order, not globally sorted.
func (d *Dictionary) Each(fn func(data []byte)) {
	for _, b := range d.buckets {
		b.Each(func(_ string, e *Entry) {
			fn(e.Bytes())
		})
	}
}
