package token

import (
	"fmt"
	"testing"
)

func TestMakePosLineColRoundTrips(t *testing.T) {
	cases := []struct {
		line, col int
	}{
		{1, 1},
		{1, 80},
		{42, 7},
		{MaxLines, MaxCols},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%d:%d", c.line, c.col), func(t *testing.T) {
			p := MakePos(c.line, c.col)
			gotLine, gotCol := p.LineCol()
			if gotLine != c.line || gotCol != c.col {
				t.Errorf("want %d:%d, got %d:%d", c.line, c.col, gotLine, gotCol)
			}
		})
	}
}

func TestPosUnknown(t *testing.T) {
	cases := []struct {
		name string
		p    Pos
		want bool
	}{
		{"zero value", Pos(0), true},
		{"zero line", MakePos(0, 1), true},
		{"zero col", MakePos(1, 0), true},
		{"both set", MakePos(3, 4), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.p.Unknown(); got != c.want {
				t.Errorf("want %t, got %t", c.want, got)
			}
		})
	}
}
