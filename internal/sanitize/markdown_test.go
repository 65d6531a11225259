package sanitize

import "testing"

func TestText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bold", "**bold**", "bold"},
		{"heading", "### Title\ntext", "Title\ntext"},
		{"inline code", "`code`", "code"},
		{"triple emphasis", "***both***", "both"},
		{"underscore bold", "__strong__", "strong"},
		{"italic", "plan: *soon*", "plan: soon"},
		{"adjacent italics", "*a* *b*", "a b"},
		{"fence keeps content", "before\n```\ninner\n```\nafter", "before\ninner\nafter"},
		{"collapse blank lines", "a\n\n\n\n\nb", "a\n\nb"},
		{"trims result", "  hello  ", "hello"},
		{"empty", "", ""},
		{"mixed", "## Plan\n**Step 1**: use `floss` *daily*", "Plan\nStep 1: use floss daily"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Text(tc.in)
			if got != tc.want {
				t.Fatalf("Text(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestTextIdempotent(t *testing.T) {
	inputs := []string{
		"**bold** and *italic* and `code`",
		"### Heading\n```\nblock\n```",
		"plain text stays plain",
	}

	for _, in := range inputs {
		once := Text(in)
		twice := Text(once)
		if once != twice {
			t.Fatalf("not idempotent for %q: once %q, twice %q", in, once, twice)
		}
	}
}
