package parser

// Stack is a LIFO used for iterative tree walks.
type Stack[T any] struct {
	items []T
}

func NewStack[T any]() *Stack[T] {
	return &Stack[T]{}
}

func (s *Stack[T]) Push(item T) {
	s.items = append(s.items, item)
}

// Pop removes and returns the top item. ok is false when the stack is empty.
func (s *Stack[T]) Pop() (item T, ok bool) {
	if len(s.items) == 0 {
		return item, false
	}
	last := len(s.items) - 1
	item = s.items[last]
	var zero T
	s.items[last] = zero
	s.items = s.items[:last]
	return item, true
}

func (s *Stack[T]) HasItems() bool {
	return len(s.items) > 0
}

func (s *Stack[T]) Len() int {
	return len(s.items)
}
