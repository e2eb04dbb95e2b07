package layout

import (
	"testing"
)

func TestRender(t *testing.T) {
	abGroup := Group(Concat(Text("aa"), Line(), Text("bb")))
	nested := Group(Concat(
		Text("a"),
		Nest(2, Concat(SoftLine(), Text("b"))),
		SoftLine(),
		Text("c"),
	))

	tests := []struct {
		name  string
		width int
		doc   Doc
		want  string
	}{
		{
			name:  "group flat when it fits",
			width: 5,
			doc:   abGroup,
			want:  "aa bb",
		},
		{
			name:  "group broken when it does not fit",
			width: 4,
			doc:   abGroup,
			want:  "aa\nbb",
		},
		{
			name: "fits check accounts for trailing text after the group",
			// The group alone measures 5 but the trailing text shares
			// its line, so at width 7 the group must break.
			width: 7,
			doc:   Concat(abGroup, Text("ccc")),
			want:  "aa\nbbccc",
		},
		{
			name:  "trailing text still fits at width 8",
			width: 8,
			doc:   Concat(abGroup, Text("ccc")),
			want:  "aa bbccc",
		},
		{
			name:  "hard line forces the break even when flat would fit",
			width: 80,
			doc:   Group(Concat(Text("a"), HardLine(), Text("b"))),
			want:  "a\nb",
		},
		{
			name:  "soft line renders as nothing when flat",
			width: 80,
			doc:   nested,
			want:  "abc",
		},
		{
			name:  "nest indents every newline inside it",
			width: 1,
			doc:   nested,
			want:  "a\n  b\nc",
		},
		{
			name:  "reflow joins words with single spaces",
			width: 80,
			doc:   Reflow("one   two\tthree"),
			want:  "one two three",
		},
		{
			name:  "reflow wraps at the width",
			width: 8,
			doc:   Reflow("one two three"),
			want:  "one two\nthree",
		},
		{
			name:  "nil renders as nothing",
			width: 80,
			doc:   Nil,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RenderString(tt.width, tt.doc)
			if err != nil {
				t.Fatalf("RenderString() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("RenderString() = %q, want %q", got, tt.want)
			}
		})
	}
}
