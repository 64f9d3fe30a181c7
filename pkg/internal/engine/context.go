package engine

// contextTag names the syntactic region being parsed.
type contextTag uint8

const (
	ctxNone contextTag = iota
	ctxObjectKey
	ctxObjectValue
	ctxArray
)

func (c contextTag) String() string {
	switch c {
	case ctxObjectKey:
		return "object_key"
	case ctxObjectValue:
		return "object_value"
	case ctxArray:
		return "array"
	default:
		return "none"
	}
}

// contextStack tracks nested regions. Every parser that pushes a tag pops
// it again on all of its exit paths.
type contextStack struct {
	tags []contextTag
}

func (s *contextStack) push(tag contextTag) {
	s.tags = append(s.tags, tag)
}

// pop removes the innermost tag. Popping an empty stack does nothing.
func (s *contextStack) pop() {
	if len(s.tags) > 0 {
		s.tags = s.tags[:len(s.tags)-1]
	}
}

func (s *contextStack) current() contextTag {
	if len(s.tags) == 0 {
		return ctxNone
	}
	return s.tags[len(s.tags)-1]
}

func (s *contextStack) contains(tag contextTag) bool {
	for _, t := range s.tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (s *contextStack) empty() bool {
	return len(s.tags) == 0
}

func (s *contextStack) depth() int {
	return len(s.tags)
}
