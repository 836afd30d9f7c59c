package diag

import "strconv"

// Location points at one line of a document. Line is 1-based; 0 means the
// whole document.
type Location struct {
	Path string `json:"path" yaml:"path"`
	Line int    `json:"line,omitempty" yaml:"line,omitempty"`
}

func (l Location) String() string {
	if l.Line == 0 {
		return l.Path
	}
	return l.Path + ":" + strconv.Itoa(l.Line)
}

type Note struct {
	Loc Location `json:"location" yaml:"location"`
	Msg string   `json:"message" yaml:"message"`
}

type Diagnostic struct {
	Severity Severity `json:"severity" yaml:"severity"`
	Code     Code     `json:"code" yaml:"code"`
	Message  string   `json:"message" yaml:"message"`
	Primary  Location `json:"location" yaml:"location"`
	// Text is the offending line as read, when there is one.
	Text  string `json:"text,omitempty" yaml:"text,omitempty"`
	Notes []Note `json:"notes,omitempty" yaml:"notes,omitempty"`
}
