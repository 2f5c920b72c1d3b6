package text

import "testing"

func TestBufferBasic(t *testing.T) {
	b := NewBuffer("ab\ncd")
	if b.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", b.Len())
	}
	if b.IsEnd(4) {
		t.Errorf("IsEnd(4) should be false")
	}
	if !b.IsEnd(5) {
		t.Errorf("IsEnd(5) should be true")
	}
	if b.GetValue(0) != 'a' {
		t.Errorf("GetValue(0) = %q, want 'a'", b.GetValue(0))
	}
}

func TestBufferPositions(t *testing.T) {
	b := NewBuffer("ab\ncd")
	cases := []struct {
		idx  int
		line int
		col  int
	}{
		{0, 1, 1}, // 'a'
		{1, 1, 2}, // 'b'
		{2, 1, 3}, // '\n'
		{3, 2, 1}, // 'c'
		{4, 2, 2}, // 'd'
		{5, 2, 3}, // one past end
	}
	for _, c := range cases {
		pos := b.GetPositionAt(c.idx)
		if pos.Line != c.line || pos.Column != c.col {
			t.Errorf("GetPositionAt(%d) = %v, want {%d %d}", c.idx, pos, c.line, c.col)
		}
	}
}

func TestBufferPositionPastEnd(t *testing.T) {
	b := NewBuffer("x")
	pos := b.GetPositionAt(100)
	want := b.GetPositionAt(1)
	if pos != want {
		t.Errorf("GetPositionAt(100) = %v, want one-past-end %v", pos, want)
	}
}
