package extract

import "iter"

// Declarations yields every declaration currently registered in bucket, in
// the bucket's order. Nothing is filtered and resolution is never triggered.
// The sequence can be ranged over again to re-read the bucket.
func Declarations(bucket Bucket) iter.Seq[Declaration] {
	return func(yield func(Declaration) bool) {
		for d := range bucket.Declarations() {
			if !yield(d) {
				return
			}
		}
	}
}
