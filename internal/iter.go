package internal

import (
	"iter"
)

// IterSeq2Concat chains key/value iterators, yielding each in turn.
// Keys are not deduplicated; a later sequence may repeat an earlier key.
func IterSeq2Concat[K any, V any](seqs ...iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, seq := range seqs {
			for key, value := range seq {
				if !yield(key, value) {
					return
				}
			}
		}
	}
}
