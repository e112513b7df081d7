package domain

// Document is the layout-free structure a synthesizer hands to a renderer.
type Document struct {
	Title    string
	Subtitle string
	Meta     []Field
	Sections []Section
}

type Field struct {
	Label string
	Value string
}

type Section struct {
	Title   string
	Columns []string
	Rows    [][]string
	Notes   []string
}
