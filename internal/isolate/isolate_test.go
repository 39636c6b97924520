package isolate

import (
	"math/rand/v2"
	"strings"
	"testing"
	"unsafe"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-mdscope/internal/scope"
)

func TestIsolateActions(t *testing.T) {
	doc := "- One\n- Two\n- Three"

	cases := []struct {
		name   string
		action Action
		check  func(t *testing.T, r Result)
	}{
		{
			name:   "vector",
			action: LeaveAsVector(),
			check: func(t *testing.T, r Result) {
				if diff := cmp.Diff([]string{"One", "Two", "Three"}, r.Items()); diff != "" {
					t.Fatalf("items mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name:   "concatenate",
			action: Concatenate(),
			check: func(t *testing.T, r Result) {
				if r.Text() != "OneTwoThree" {
					t.Fatalf("unexpected text %q", r.Text())
				}
			},
		},
		{
			name:   "concatenate with delimiter",
			action: ConcatenateWith(", "),
			check: func(t *testing.T, r Result) {
				if r.Text() != "One, Two, Three" {
					t.Fatalf("unexpected text %q", r.Text())
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := Isolate(doc, scope.Lists, tc.action)
			if err != nil {
				t.Fatalf("Isolate: %v", err)
			}
			if r.IsConcatenated() != tc.action.Concatenates() {
				t.Fatalf("result shape does not match action %s", tc.action)
			}
			tc.check(t, r)
		})
	}
}

func TestIsolateEmptyScope(t *testing.T) {
	doc := "Just a paragraph with no code."

	vec, err := Isolate(doc, scope.CodeBlock, LeaveAsVector())
	if err != nil {
		t.Fatalf("Isolate: %v", err)
	}
	if !vec.IsVector() || !vec.IsEmpty() || vec.Len() != 0 {
		t.Fatalf("expected empty vector, got %+v", vec)
	}
	if vec.Items() == nil {
		t.Fatalf("expected non-nil empty items")
	}

	joined, err := Isolate(doc, scope.CodeBlock, ConcatenateWith("|"))
	if err != nil {
		t.Fatalf("Isolate: %v", err)
	}
	if !joined.IsConcatenated() || joined.Text() != "" || !joined.IsEmpty() {
		t.Fatalf("expected empty concatenation, got %+v", joined)
	}
}

func TestIsolateBorrowsFromDocument(t *testing.T) {
	doc := "# Title\n\nBody with **bold** words."

	r, err := Isolate(doc, scope.Stylized, LeaveAsVector())
	if err != nil {
		t.Fatalf("Isolate: %v", err)
	}
	items := r.Items()
	if len(items) != 1 || items[0] != "bold" {
		t.Fatalf("unexpected items %q", items)
	}

	offset := strings.Index(doc, "bold")
	if unsafe.StringData(items[0]) != unsafe.StringData(doc[offset:]) {
		t.Fatalf("expected item to share the document's memory")
	}
}

func TestIsolateUnicodeBoundaries(t *testing.T) {
	cases := []struct {
		doc   string
		scope scope.Scope
		want  []string
	}{
		{doc: "# Café résumé\n\nnaïve", scope: scope.Heading, want: []string{"Café résumé"}},
		{doc: "- 日本語\n- 中文\n- 한국어", scope: scope.Lists, want: []string{"日本語", "中文", "한국어"}},
		{doc: "Some *émphasis* 🎉 here", scope: scope.Italicized, want: []string{"émphasis"}},
	}

	for _, tc := range cases {
		r, err := Isolate(tc.doc, tc.scope, LeaveAsVector())
		if err != nil {
			t.Fatalf("Isolate(%q): %v", tc.doc, err)
		}
		if diff := cmp.Diff(tc.want, r.Items()); diff != "" {
			t.Fatalf("items mismatch for %q (-want +got):\n%s", tc.doc, diff)
		}
	}
}

func TestIsolateUnknownScope(t *testing.T) {
	if _, err := Isolate("# x", scope.Scope(99), LeaveAsVector()); !scope.IsUnknownScope(err) {
		t.Fatalf("expected unknown scope error, got %v", err)
	}
}

func TestApplyInsertsDelimiterBetweenPieces(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	const delimiter = "\x00|\x00"

	for round := 0; round < 200; round++ {
		n := rng.IntN(12)
		pieces := make([]scope.Piece, n)
		for i := range pieces {
			pieces[i] = scope.Piece{Text: strings.Repeat("x", rng.IntN(5))}
		}

		r := Apply(pieces, ConcatenateWith(delimiter))
		want := n - 1
		if n == 0 {
			want = 0
		}
		if got := strings.Count(r.Text(), delimiter); got != want {
			t.Fatalf("round %d: %d pieces produced %d delimiters", round, n, got)
		}
	}
}

func TestResultHelpers(t *testing.T) {
	vec := Vector([]string{"a", "b"})
	if !vec.IsVector() || vec.IsConcatenated() || vec.Len() != 2 || vec.IsEmpty() {
		t.Fatalf("unexpected vector helpers %+v", vec)
	}
	out := vec.Strings()
	out[0] = "changed"
	if vec.Items()[0] != "a" {
		t.Fatalf("Strings must return a copy")
	}

	joined := Concatenated("ab")
	if joined.Len() != 1 || joined.Items() != nil || joined.Text() != "ab" {
		t.Fatalf("unexpected concatenated helpers %+v", joined)
	}
	if diff := cmp.Diff([]string{"ab"}, joined.Strings()); diff != "" {
		t.Fatalf("strings mismatch (-want +got):\n%s", diff)
	}
	if !Concatenated("").IsEmpty() || Concatenated("").Len() != 1 {
		t.Fatalf("empty concatenation should be empty with len 1")
	}
}

func TestActionDescribe(t *testing.T) {
	if LeaveAsVector().String() != "vector" || Concatenate().String() != "concatenate" {
		t.Fatalf("unexpected action names")
	}
	d, ok := ConcatenateWith("-").Delimiter()
	if !ok || d != "-" {
		t.Fatalf("unexpected delimiter %q %v", d, ok)
	}
	if _, ok := Concatenate().Delimiter(); ok {
		t.Fatalf("plain concatenate must not report a delimiter")
	}
}
