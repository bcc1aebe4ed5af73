/*
Package cgen builds C translation units out of typed declarations.

A File is an ordered list of declarations: preprocessor directives, arrays,
struct literals and extern declarations. All of them are rendered by one
formatter so the layout is identical everywhere: braces open on the
declaration line, members are indented by four spaces and every definition
ends with "};" on its own line.
*/
package cgen

import (
	"bytes"
	"io"
	"strings"
)

// Indent is the indentation used inside braces
const Indent = "    "

// Decl is a single top-level declaration or directive.
type Decl interface {
	format(b *bytes.Buffer)
}

// File is an ordered list of declarations.
type File struct {
	Decls []Decl
}

// Add appends declarations to the file
func (f *File) Add(decls ...Decl) {
	f.Decls = append(f.Decls, decls...)
}

// Bytes renders the file
func (f *File) Bytes() []byte {
	b := new(bytes.Buffer)
	for _, d := range f.Decls {
		d.format(b)
	}
	return b.Bytes()
}

// WriteTo renders the file to w in a single write.
func (f *File) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(f.Bytes())
	return int64(n), err
}

// Pragma is a #pragma directive.
type Pragma struct {
	Directive string
}

func (p Pragma) format(b *bytes.Buffer) {
	b.WriteString("#pragma ")
	b.WriteString(p.Directive)
	b.WriteByte('\n')
}

// Include is an #include directive. System includes use angle brackets.
type Include struct {
	Path   string
	System bool
}

func (i Include) format(b *bytes.Buffer) {
	b.WriteString("#include ")
	if i.System {
		b.WriteString("<" + i.Path + ">")
	} else {
		b.WriteString(`"` + i.Path + `"`)
	}
	b.WriteByte('\n')
}

// Blank is an empty line.
type Blank struct{}

func (Blank) format(b *bytes.Buffer) {
	b.WriteByte('\n')
}

// Array is an array definition with an initializer list.
//
// Elements are laid out PerLine to a line, or all on one line if PerLine is
// zero. When Terminated is set every element is followed by a comma,
// otherwise commas only separate elements.
type Array struct {
	Static     bool
	Type       string
	Pointer    bool
	Name       string
	Len        string
	Elements   []string
	PerLine    int
	Terminated bool
}

func (a Array) format(b *bytes.Buffer) {
	writeStorage(b, a.Static)
	b.WriteString(a.Type)
	b.WriteByte(' ')
	if a.Pointer {
		b.WriteByte('*')
	}
	b.WriteString(a.Name + "[" + a.Len + "] = {\n")

	perLine := a.PerLine
	if perLine <= 0 {
		perLine = len(a.Elements)
	}

	for i := 0; i < len(a.Elements); i += perLine {
		end := i + perLine
		if end > len(a.Elements) {
			end = len(a.Elements)
		}

		b.WriteString(Indent)
		if a.Terminated {
			for _, e := range a.Elements[i:end] {
				b.WriteString(e)
				b.WriteByte(',')
			}
		} else {
			b.WriteString(strings.Join(a.Elements[i:end], ","))
			if end < len(a.Elements) {
				b.WriteByte(',')
			}
		}
		b.WriteByte('\n')
	}

	b.WriteString("};\n")
}

// Field is one designated initializer of a Struct.
type Field struct {
	Name  string
	Value string
}

// Struct is a struct definition initialized with designated initializers.
type Struct struct {
	Static bool
	Type   string
	Name   string
	Fields []Field
}

func (s Struct) format(b *bytes.Buffer) {
	writeStorage(b, s.Static)
	b.WriteString(s.Type + " " + s.Name + " = {\n")
	for i, f := range s.Fields {
		b.WriteString(Indent + "." + f.Name + " = " + f.Value)
		if i < len(s.Fields)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString("};\n")
}

// Extern is a declaration with external linkage and no definition. A
// non-empty Len declares an array.
type Extern struct {
	Type string
	Name string
	Len  string
}

func (e Extern) format(b *bytes.Buffer) {
	b.WriteString("extern " + e.Type + " " + e.Name)
	if e.Len != "" {
		b.WriteString("[" + e.Len + "]")
	}
	b.WriteString(";\n")
}

func writeStorage(b *bytes.Buffer, static bool) {
	if static {
		b.WriteString("static ")
	}
}
