package markup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormat(t *testing.T) {
	type args struct {
		input string
		width uint32
	}
	tests := []struct {
		name string
		args args
		want string
	}{
		{
			name: "empty input",
			args: args{input: "", width: 80},
			want: "",
		},
		{
			name: "whitespace only",
			args: args{input: "   \n  ", width: 80},
			want: "",
		},
		{
			name: "doctype",
			args: args{input: "<!DOCTYPE html>", width: 80},
			want: "<!DOCTYPE html>\n",
		},
		{
			name: "legacy doctype quote style is normalized",
			args: args{input: "<!DOCTYPE html SYSTEM 'about:legacy-compat'>", width: 80},
			want: "<!DOCTYPE html SYSTEM \"about:legacy-compat\">\n",
		},
		{
			name: "inline comment",
			args: args{input: "<!--   My comment -->", width: 80},
			want: "<!-- My comment -->\n",
		},
		{
			name: "multiline comment keeps its lines verbatim",
			args: args{input: "<!--\n   spread\n   over\n-->", width: 80},
			want: "<!--\n   spread\n   over\n-->\n",
		},
		{
			name: "void element always renders self-closed",
			args: args{input: "<br>", width: 80},
			want: "<br/>\n",
		},
		{
			name: "void element name keeps its case",
			args: args{input: "<BR>", width: 80},
			want: "<BR/>\n",
		},
		{
			name: "attribute order is preserved",
			args: args{input: `<input type="text" required>`, width: 80},
			want: "<input type=\"text\" required/>\n",
		},
		{
			name: "attributes wrap when they exceed the width",
			args: args{input: `<input type="text" required>`, width: 20},
			want: "<input\n  type=\"text\"\n  required\n/>\n",
		},
		{
			name: "matching case round-trips",
			args: args{input: "<Foo>x</Foo>", width: 80},
			want: "<Foo>x</Foo>\n",
		},
		{
			name: "mismatched case degrades into text",
			args: args{input: "<Foo>x</foo>", width: 80},
			want: "<Foo>x\n",
		},
		{
			name: "malformed nested element degrades into text",
			args: args{input: "<div><Foo>oops</foo></div>", width: 80},
			want: "<div><Foo>oops\n",
		},
		{
			name: "empty element stays on one line",
			args: args{input: "<div></div>", width: 80},
			want: "<div></div>\n",
		},
		{
			name: "element-only content always goes multiline",
			args: args{input: "<div><p>a</p><span>b</span></div>", width: 80},
			want: "<div>\n  <p>a</p>\n  <span>b</span>\n</div>\n",
		},
		{
			name: "element-only content ignores the width",
			args: args{input: "<ul><li>one</li><li>two</li></ul>", width: 20},
			want: "<ul>\n  <li>one</li>\n  <li>two</li>\n</ul>\n",
		},
		{
			name: "text content reflows at the width",
			args: args{input: "<p>some words here</p>", width: 12},
			want: "<p>\n  some words\n  here\n</p>\n",
		},
		{
			name: "text content stays flat when it fits",
			args: args{input: "<p>Hello world</p>", width: 80},
			want: "<p>Hello world</p>\n",
		},
		{
			name: "top level text and elements alternate",
			args: args{input: "text with  <b>bold</b> inline", width: 80},
			want: "text with\n<b>bold</b>\ninline\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Configuration{LineWidth: tt.args.width, IndentWidth: 2}
			got, err := Format(tt.args.input, config)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Format() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestFormatTestdata checks that every fixture is a fixed point of Format:
// formatting a canonical file must reproduce it byte for byte.
func TestFormatTestdata(t *testing.T) {
	config := DefaultConfiguration()

	entries, err := os.ReadDir("testdata")
	if err != nil {
		t.Fatal(err)
	}

	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".html") {
			continue
		}

		t.Run(entry.Name(), func(t *testing.T) {
			raw, err := os.ReadFile(filepath.Join("testdata", entry.Name()))
			if err != nil {
				t.Fatal(err)
			}

			pretty, err := Format(string(raw), config)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}

			if diff := cmp.Diff(string(raw), pretty); diff != "" {
				t.Errorf("not a fixed point (-fixture +formatted):\n%s", diff)
			}
		})
	}
}

// Formatting twice must give the same result as formatting once.
func TestFormatIdempotent(t *testing.T) {
	inputs := []string{
		"<!DOCTYPE html><html><head><title>t</title></head><body><p>hi</p></body></html>",
		"   text   spread\n\n over lines <hr> more   text",
		"<!--\n  one\n  two\n-->",
		`<section id="a"><article id="b">words in here</article></section>`,
		"<div><Foo>oops</foo></div>",
	}

	config := DefaultConfiguration()

	for _, input := range inputs {
		once, err := Format(input, config)
		if err != nil {
			t.Fatalf("Format(%q) error = %v", input, err)
		}
		twice, err := Format(once, config)
		if err != nil {
			t.Fatalf("Format(%q) error = %v", once, err)
		}
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Errorf("Format(%q) is not idempotent (-once +twice):\n%s", input, diff)
		}
	}
}

func TestConfigurationFromFile(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "markfmt.yaml")
	if err := os.WriteFile(fileName, []byte("lineWidth: 40\n"), 0664); err != nil {
		t.Fatal(err)
	}

	config, err := ConfigurationFromFile(fileName)
	if err != nil {
		t.Fatalf("ConfigurationFromFile() error = %v", err)
	}
	if config.LineWidth != 40 {
		t.Errorf("LineWidth = %d, want 40", config.LineWidth)
	}
	// Fields missing from the file keep their defaults
	if config.IndentWidth != 2 {
		t.Errorf("IndentWidth = %d, want 2", config.IndentWidth)
	}
}
