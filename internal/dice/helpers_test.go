package dice

import "testing"

// scriptedSource returns pre-set face values in order.
type scriptedSource struct {
	t     *testing.T
	faces []int
	next  int
}

func newScripted(t *testing.T, faces ...int) *scriptedSource {
	t.Helper()
	return &scriptedSource{t: t, faces: faces}
}

func (s *scriptedSource) Intn(n int) int {
	if s.next >= len(s.faces) {
		s.t.Fatalf("scriptedSource exhausted after %d draws", s.next)
	}
	face := s.faces[s.next]
	s.next++
	if face < 1 || face > n {
		s.t.Fatalf("scripted face %d out of range for d%d", face, n)
	}
	return face - 1
}

// forbiddenSource fails the test on any draw.
type forbiddenSource struct {
	t *testing.T
}

func (s forbiddenSource) Intn(int) int {
	s.t.Fatal("unexpected draw")
	return 0
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}
