package markup

// A Node is one syntactic unit of the document: a comment, a doctype, an
// element or a run of literal text. All string data in a Node is a view
// into the original input, so a tree must not outlive the input it was
// parsed from, and must not be mutated after parsing.
type Node interface {
	node()
}

// A Comment holds the normalized body of a <!-- --> comment, without the
// delimiters. A body whose trimmed content has no newline is stored as
// that trimmed content. Otherwise the first and last raw lines (the ones
// abutting the delimiters, typically just whitespace) are dropped and the
// interior lines are kept verbatim, with no per-line trimming.
type Comment struct {
	Text string
}

// A Doctype records a <!DOCTYPE html> declaration. Only the presence of
// the about:legacy-compat system string is retained; the rest of the
// declaration text is not preserved.
type Doctype struct {
	Legacy bool
}

// An Attribute is a single name or name=value pair in a start tag. Val is
// meaningful only when HasVal is true, which distinguishes a bare name
// from name="".
type Attribute struct {
	Key    string
	Val    string
	HasVal bool
}

// An Element is a start tag with its attributes and, unless it is void,
// its content and matching end tag. Attributes keep their original order,
// duplicates included.
type Element struct {
	Name       string
	Attributes []Attribute
	Content    []Node

	// Void marks an element with no content and no end tag, either
	// because its lowercased name is one of the HTML void elements or
	// because the start tag was self-closing.
	Void bool
}

// A Text is a run of literal character data between tags, trimmed of
// surrounding whitespace. It never contains an end tag.
type Text struct {
	Body string
}

func (Comment) node()  {}
func (Doctype) node()  {}
func (*Element) node() {}
func (Text) node()     {}

// The HTML void elements, which never take content or an end tag. Unlike
// start/end tag matching, membership here is checked case-insensitively.
var voidElements = []string{
	"area", "base", "br", "col", "embed", "hr", "img",
	"input", "link", "meta", "param", "source", "track", "wbr",
}

func contains(set []string, tagName string) bool {
	for _, el := range set {
		if tagName == el {
			return true
		}
	}
	return false
}
