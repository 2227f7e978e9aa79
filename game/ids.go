package game

// idSeq hands out monotonically increasing ids for one entity kind.
type idSeq struct{ next int }

func (s *idSeq) take() int {
	id := s.next
	s.next++
	return id
}
