package ast

import "testing"

func TestParseBasic(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		wantErr bool
	}{
		{"literal", "hello", false},
		{"dot", "a.b", false},
		{"star", "a*", false},
		{"plus", "a+", false},
		{"question", "a?", false},
		{"alternation", "foo|bar", false},
		{"class", "[a-z0-9_]+", false},
		{"negated class", "[^a-z]", false},
		{"bounded repeat", "a{2,4}", false},
		{"exact repeat", "a{3}", false},
		{"open repeat", "a{2,}", false},
		{"non-greedy", "a+?", false},
		{"group", "(ab)+", false},
		{"non-capturing group", "(?:ab)+", false},
		{"named group", "(?P<year>[0-9]{4})", false},
		{"anchors", "^abc$", false},
		{"word boundary", `\babc\b`, false},
		{"backreference", `(a)\1`, false},
		{"named backreference", `(?P<x>a)\g<x>`, false},
		{"lookahead", `a(?=b)`, false},
		{"negative lookahead", `a(?!b)`, false},
		{"lookbehind", `(?<=a)b`, false},
		{"negative lookbehind", `(?<!a)b`, false},
		{"unterminated group", "(a", true},
		{"dangling quantifier", "*a", true},
		{"invalid backreference", `\9`, true},
		{"unterminated class", "[a-z", true},
		{"bad repeat range", "a{4,2}", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.pattern, DefaultFlags())
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.pattern, err, tt.wantErr)
			}
		})
	}
}

func TestParseIgnoreCaseFoldsLiterals(t *testing.T) {
	p, err := Parse("a", Flags{IgnoreCase: true, Unicode: true})
	if err != nil {
		t.Fatal(err)
	}
	if p.Root.Op != OpCharClass {
		t.Fatalf("expected folded literal to become CharClass, got %v", p.Root.Op)
	}
}

func TestCaptureIndices(t *testing.T) {
	p, err := Parse(`(a)(b(c))`, DefaultFlags())
	if err != nil {
		t.Fatal(err)
	}
	if p.NumCaptures != 3 {
		t.Fatalf("NumCaptures = %d, want 3", p.NumCaptures)
	}
}

func TestHasBackreferenceAndLookaround(t *testing.T) {
	p, err := Parse(`(a)\1`, DefaultFlags())
	if err != nil {
		t.Fatal(err)
	}
	if !p.HasBackreference() {
		t.Error("expected HasBackreference true")
	}
	if p.HasLookaround() {
		t.Error("expected HasLookaround false")
	}

	p2, err := Parse(`a(?=b)`, DefaultFlags())
	if err != nil {
		t.Fatal(err)
	}
	if !p2.HasLookaround() {
		t.Error("expected HasLookaround true")
	}
}

func TestHasRightAnchor(t *testing.T) {
	tests := []struct {
		pattern string
		want    bool
	}{
		{"^(a+)+$", true},
		{"(a+)+", false},
		{`^([^@]+)+@`, false},
		{`a\z`, true},
	}
	for _, tt := range tests {
		p, err := Parse(tt.pattern, DefaultFlags())
		if err != nil {
			t.Fatal(err)
		}
		if got := p.HasRightAnchor(true); got != tt.want {
			t.Errorf("HasRightAnchor(%q) = %v, want %v", tt.pattern, got, tt.want)
		}
	}
}

func TestHasRightAnchorMultilineLineEnd(t *testing.T) {
	p, err := Parse(`^(a+)+$`, Flags{Multiline: true})
	if err != nil {
		t.Fatal(err)
	}
	if !p.HasRightAnchor(true) {
		t.Fatal("expected a multiline $ to count as a right anchor when countLineEnd is true")
	}
	if p.HasRightAnchor(false) {
		t.Fatal("expected a multiline $ not to count as a right anchor when countLineEnd is false")
	}
}
