package dtl

import "math"

//labelCounts counts records with label 0 and label 1.
func labelCounts(data Dataset) (count0, count1 int) {
	for _, datum := range data {
		if datum.Y == 0 {
			count0++
		} else {
			count1++
		}
	}
	return
}

//entropyFromCounts is the Shannon entropy in bits of a two-label distribution.
func entropyFromCounts(count0, count1 int) float64 {
	total := count0 + count1
	if total == 0 {
		return 0
	}
	entropy := 0.0
	for _, count := range [2]int{count0, count1} {
		if count > 0 {
			p := float64(count) / float64(total)
			entropy -= p * math.Log2(p)
		}
	}
	return entropy
}

//Entropy returns the binary-label entropy of data in bits. It is 0 for an empty
//or single-label dataset and 1 for a balanced one.
func Entropy(data Dataset) float64 {
	return entropyFromCounts(labelCounts(data))
}
