package scope

import (
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func texts(t *testing.T, document string, s Scope) []string {
	t.Helper()
	pieces, err := Classify(document, s)
	if err != nil {
		t.Fatalf("Classify(%s): %v", s, err)
	}
	out := make([]string, 0, len(pieces))
	for _, p := range pieces {
		out = append(out, p.Text)
	}
	return out
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name  string
		doc   string
		scope Scope
		want  []string
	}{
		{
			name:  "frontmatter",
			doc:   "---\ntitle: Test\nauthor: Jane\n---\n# Body",
			scope: Frontmatter,
			want:  []string{"title: Test\nauthor: Jane"},
		},
		{
			name:  "frontmatter dots closer",
			doc:   "---\ntitle: Test\n...\n# Body",
			scope: Frontmatter,
			want:  []string{"title: Test"},
		},
		{
			name:  "frontmatter missing",
			doc:   "# No frontmatter\n\nJust text.",
			scope: Frontmatter,
			want:  []string{},
		},
		{
			name:  "prose skips headings and quotes",
			doc:   "# Title\n\nFirst paragraph.\n\n> quoted\n\nSecond.",
			scope: Prose,
			want:  []string{"First paragraph.", "Second."},
		},
		{
			name:  "prose keeps soft breaks",
			doc:   "one\ntwo",
			scope: Prose,
			want:  []string{"one", "\n", "two"},
		},
		{
			name:  "prose skips code blocks",
			doc:   "Text before.\n\n```rust\nfn code() {}\n```\n\nText after.",
			scope: Prose,
			want:  []string{"Text before.", "Text after."},
		},
		{
			name:  "code block fenced",
			doc:   "# Example\n\n```rust\nfn main() {\n    println!(\"hello\");\n}\n```",
			scope: CodeBlock,
			want:  []string{"fn main() {\n    println!(\"hello\");\n}\n"},
		},
		{
			name:  "code block multiple",
			doc:   "```\nfirst\n```\n\ntext\n\n```\nsecond\n```\n",
			scope: CodeBlock,
			want:  []string{"first\n", "second\n"},
		},
		{
			name:  "inline code is not a code block",
			doc:   "Text with `inline code` here.\n\n```\nblock code\n```",
			scope: CodeBlock,
			want:  []string{"block code\n"},
		},
		{
			name:  "block quote",
			doc:   "> Important message here.\n\nNormal message here.",
			scope: BlockQuote,
			want:  []string{"Important message here."},
		},
		{
			name:  "heading levels",
			doc:   "# H1\n## H2\n### H3\n#### H4\n##### H5\n###### H6",
			scope: Heading,
			want:  []string{"H1", "H2", "H3", "H4", "H5", "H6"},
		},
		{
			name:  "heading with inline code",
			doc:   "# Heading with `code`\n\nBody.",
			scope: Heading,
			want:  []string{"Heading with ", "code"},
		},
		{
			name:  "setext headings",
			doc:   "Heading Level 1\n================\n\nHeading Level 2\n----------------",
			scope: Heading,
			want:  []string{"Heading Level 1", "Heading Level 2"},
		},
		{
			name:  "stylized mixed",
			doc:   "**bold** and *italic* and ~~strike~~",
			scope: Stylized,
			want:  []string{"bold", "italic", "strike"},
		},
		{
			name:  "stylized nested",
			doc:   "Normal ***bold and italic*** text.",
			scope: Stylized,
			want:  []string{"bold and italic"},
		},
		{
			name:  "italicized excludes bold",
			doc:   "Normal *italic text* and **bold text** here.",
			scope: Italicized,
			want:  []string{"italic text"},
		},
		{
			name:  "non italicized",
			doc:   "Normal *italic* normal again.",
			scope: NonItalicized,
			want:  []string{"Normal ", " normal again."},
		},
		{
			name:  "links inline",
			doc:   "Check out [Example](https://example.com) for more.",
			scope: Links,
			want:  []string{"Example", "https://example.com"},
		},
		{
			name:  "links multiple",
			doc:   "[First](https://first.com) and [Second](https://second.com)",
			scope: Links,
			want:  []string{"First", "https://first.com", "Second", "https://second.com"},
		},
		{
			name:  "reference link",
			doc:   "[Link text][ref]\n\n[ref]: https://example.com",
			scope: Links,
			want:  []string{"Link text", "https://example.com"},
		},
		{
			name:  "autolink",
			doc:   "Visit <https://example.com> for more info.",
			scope: Links,
			want:  []string{"https://example.com"},
		},
		{
			name:  "images",
			doc:   "![Alt text](https://example.com/image.png)",
			scope: Images,
			want:  []string{"Alt text", "https://example.com/image.png"},
		},
		{
			name:  "image empty alt",
			doc:   "![](https://example.com/img.jpg)",
			scope: Images,
			want:  []string{"https://example.com/img.jpg"},
		},
		{
			name:  "lists unordered",
			doc:   "- One\n- Two\n- Three",
			scope: Lists,
			want:  []string{"One", "Two", "Three"},
		},
		{
			name:  "lists ordered",
			doc:   "1. First\n2. Second",
			scope: Lists,
			want:  []string{"First", "Second"},
		},
		{
			name:  "lists nested",
			doc:   "- Parent\n  - Child\n- Sibling",
			scope: Lists,
			want:  []string{"Parent", "Child", "Sibling"},
		},
		{
			name:  "tables",
			doc:   "| Header |\n|--------|\n| Cell   |\n\nOutside table Header.",
			scope: Tables,
			want:  []string{"Header", "Cell"},
		},
		{
			name:  "tables absent",
			doc:   "Just a paragraph.",
			scope: Tables,
			want:  []string{},
		},
		{
			name:  "footnote definitions",
			doc:   "Text with footnote[^1].\n\n[^1]: This is the footnote content.",
			scope: FootnoteDefinitions,
			want:  []string{"This is the footnote content."},
		},
		{
			name:  "unicode heading",
			doc:   "# Héllo wörld 日本語\n\ntext",
			scope: Heading,
			want:  []string{"Héllo wörld 日本語"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := texts(t, tc.doc, tc.scope)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("pieces mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClassifyMarksDestinationsSynthetic(t *testing.T) {
	pieces, err := Classify("[Example](https://example.com)", Links)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if len(pieces) != 2 {
		t.Fatalf("expected 2 pieces, got %d", len(pieces))
	}
	if pieces[0].Synthetic || pieces[0].Region != (Region{Start: 1, End: 8}) {
		t.Fatalf("unexpected text piece %+v", pieces[0])
	}
	if !pieces[1].Synthetic || pieces[1].Region != (Region{}) {
		t.Fatalf("unexpected destination piece %+v", pieces[1])
	}

	regions, err := Regions("[Example](https://example.com)", Links)
	if err != nil {
		t.Fatalf("Regions: %v", err)
	}
	if diff := cmp.Diff([]Region{{Start: 1, End: 8}}, regions); diff != "" {
		t.Fatalf("regions mismatch (-want +got):\n%s", diff)
	}
}

func TestClassifyUnknownScope(t *testing.T) {
	if _, err := Classify("# Title", Scope(42)); !IsUnknownScope(err) {
		t.Fatalf("expected unknown scope error, got %v", err)
	}
	if _, err := Regions("# Title", Scope(42)); !IsUnknownScope(err) {
		t.Fatalf("expected unknown scope error from Regions, got %v", err)
	}
}

func TestClassifyEmptyDocument(t *testing.T) {
	for _, s := range All() {
		pieces, err := Classify("", s)
		if err != nil {
			t.Fatalf("Classify(%s): %v", s, err)
		}
		if len(pieces) != 0 {
			t.Fatalf("expected no pieces for %s, got %+v", s, pieces)
		}
	}
}

func TestRegionsHoldInvariantsForEveryScope(t *testing.T) {
	docs := map[string]string{
		"fixture": readFixture(t, "testdata/mixed.md"),
		"unicode": "# Über 日本語 🎉\n\n*é* **ü** ~~ß~~\n\n> 引用\n\n- élément\n\n| ç | ñ |\n|---|---|\n| ø | å |\n",
		"crlf":    "---\r\nk: v\r\n---\r\n# Title\r\n\r\nline one\r\nline two  \r\nend\r\n",
		"broken":  "**unclosed *mixed\n\n> > nested\n\n```\nno fence end",
	}

	for name, doc := range docs {
		for _, s := range All() {
			regions, err := Regions(doc, s)
			if err != nil {
				t.Fatalf("%s/%s: %v", name, s, err)
			}
			for _, r := range regions {
				if _, err := Validate(doc, r.Start, r.End); err != nil {
					t.Fatalf("%s/%s: region %+v failed validation: %v", name, s, r, err)
				}
			}
			for i := 1; i < len(regions); i++ {
				if regions[i].Start < regions[i-1].End {
					t.Fatalf("%s/%s: regions out of order %+v then %+v", name, s, regions[i-1], regions[i])
				}
			}
		}
	}
}

func TestClassifyFixture(t *testing.T) {
	doc := readFixture(t, "testdata/mixed.md")

	fm := texts(t, doc, Frontmatter)
	if len(fm) != 1 || !strings.HasPrefix(fm[0], "title: Sample Document") {
		t.Fatalf("unexpected frontmatter %q", fm)
	}

	code := texts(t, doc, CodeBlock)
	if diff := cmp.Diff([]string{"fmt.Println(\"hi\")\n"}, code); diff != "" {
		t.Fatalf("code mismatch (-want +got):\n%s", diff)
	}

	notes := texts(t, doc, FootnoteDefinitions)
	if diff := cmp.Diff([]string{"Footnote body."}, notes); diff != "" {
		t.Fatalf("footnote mismatch (-want +got):\n%s", diff)
	}
}

func readFixture(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture %s: %v", path, err)
	}
	return string(data)
}
