package dtl

//Candidate addresses one candidate split: the feature column and the record
//whose value in that column becomes the threshold.
type Candidate struct {
	Feature int
	Record  int
}

//CandidateIterable is the interface for iteration over candidate splits.
type CandidateIterable interface {
	HasNext() bool
	GetNext() Candidate
}

//CandidateRange iterates over all candidates of a features x records grid,
//feature-major: every record of feature 0, then every record of feature 1, and so on.
//Split search relies on this order to break ties.
type CandidateRange struct {
	features, records, pos int
}

//NewCandidateRange initializes a new iterator over the candidate grid.
func NewCandidateRange(features, records int) *CandidateRange {
	if features < 0 || records <= 0 {
		features, records = 0, 1
	}
	return &CandidateRange{features: features, records: records}
}

//GetNext returns the next candidate and moves the iterator to the next position.
func (r *CandidateRange) GetNext() Candidate {
	val := Candidate{Feature: r.pos / r.records, Record: r.pos % r.records}
	r.pos++
	return val
}

//HasNext checks whether there are more candidates in the iterator.
func (r *CandidateRange) HasNext() bool {
	return r.pos < r.features*r.records
}

//Len returns the total number of candidates.
func (r *CandidateRange) Len() int {
	return r.features * r.records
}
