package dtl

//MajorityVote returns the most frequent label of data. Ties resolve to 0.
func MajorityVote(data Dataset) int {
	return majorityFromCounts(labelCounts(data))
}

func majorityFromCounts(count0, count1 int) int {
	if count0 >= count1 {
		return 0
	}
	return 1
}

//sameLabel reports whether all records share one label and returns it.
func sameLabel(data Dataset) (int, bool) {
	if len(data) == 0 {
		return 0, false
	}
	label := data[0].Y
	for _, datum := range data[1:] {
		if datum.Y != label {
			return 0, false
		}
	}
	return label, true
}
