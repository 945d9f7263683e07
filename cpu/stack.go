package cpu

const (
	CALL_STACK_LIMIT = 1024 // Maximum subroutine nesting depth
)

// CallStack holds subroutine return addresses pushed by BSR and popped
// by RTS.
type CallStack struct {
	Data []uint32
}

func (s *CallStack) Push(address uint32) {
	s.Data = append(s.Data, address)
}

func (s *CallStack) Pop() (address uint32, ok bool) {
	address, ok = s.Peek()
	if ok {
		s.Data = s.Data[:len(s.Data)-1]
	}
	return
}

func (s *CallStack) Peek() (address uint32, ok bool) {
	if s.Empty() {
		return
	}

	return s.Data[len(s.Data)-1], true
}

func (s *CallStack) Empty() bool {
	return len(s.Data) == 0
}

func (s *CallStack) Full() bool {
	return len(s.Data) == CALL_STACK_LIMIT
}

func (s *CallStack) Depth() int {
	return len(s.Data)
}

func (s *CallStack) Reset() {
	if len(s.Data) > 0 {
		s.Data = s.Data[:0]
	}
}
