// Package gen implements the code generator collaborator (spec.md
// §4.J): given an already-parsed Spec, a template directory, a target
// language descriptor and Settings, it writes a driver source file.
// With the built-in template the driver holds the prologue, a ruleNames
// slice of the rule names in order, and the epilogue; it does not embed
// the rules' definitions or actions and does not call the lex engine.
//
// Grounded on github.com/clipperhouse/uax29/v2's gen2/main.go (the
// build-a-buffer-with-fmt.Fprintf, then go/format.Source, then write
// pipeline) and gen/print.go (the literal-printing style for
// unicode.RangeTable, adapted here to print category.Category bitmask
// literals and rule.List entries instead).
//
// The generator is a pure function over an already-parsed Spec: it is
// not a runtime dependency of the lex engine, and never invokes the
// rules' action code itself (spec.md §4.J).
package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"io"
	"os"
	"path/filepath"
	"text/template"

	"github.com/go-utf8lex/utf8lex"
	"github.com/go-utf8lex/utf8lex/category"
)

// RuleSpec is one already-parsed rule: its name, the source text of
// its definition (however the caller's parser printed it), and the
// action code snippet to run when it wins.
type RuleSpec struct {
	Name       string
	Definition string
	Action     string
}

// Spec is the fully parsed input to the generator: an ordered rule
// list plus the prologue/epilogue code captured from a rule-set source
// file's definitions and epilogue sections (spec.md §4, "Rule set
// source file").
type Spec struct {
	PackageName string
	Prologue    string
	Rules       []RuleSpec
	Epilogue    string
}

// Target describes the generated file's destination language surface:
// its file extension and the package clause to emit. utf8lex only
// generates Go today, so Ext is always checked against "go".
type Target struct {
	Ext         string
	PackageName string
}

// Settings bounds the generator's own behavior, separate from
// utf8lex.Settings (which bounds the lex engine it generates code
// for).
type Settings struct {
	// TemplateDir may hold a "driver.tmpl" text/template that replaces
	// the built-in driver template; if TemplateDir is empty or the file
	// is absent, the built-in template is used. No prologue or epilogue
	// files are read from it: those come from Spec.Prologue and
	// Spec.Epilogue.
	TemplateDir string
}

const builtinTemplate = `// Code generated by utf8lex/gen. DO NOT EDIT.
package {{.PackageName}}

{{.Prologue}}

var ruleNames = []string{
{{- range .Rules}}
	{{printf "%q" .Name}},
{{- end}}
}

{{.Epilogue}}
`

// Generate renders spec against tgt and settings, formats the result
// with go/format, and writes it to outPath.
func Generate(spec Spec, tgt Target, settings Settings, outPath string) error {
	if tgt.Ext != "go" {
		return utf8lex.NewError(utf8lex.PATTERN_TYPE, fmt.Sprintf("unsupported generator target extension %q", tgt.Ext))
	}

	if tgt.PackageName != "" {
		spec.PackageName = tgt.PackageName
	}

	tmpl, err := loadTemplate(settings)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, spec); err != nil {
		return utf8lex.NewError(utf8lex.STATE, fmt.Sprintf("template execution failed: %v", err))
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return utf8lex.NewError(utf8lex.STATE, fmt.Sprintf("generated source did not parse: %v", err))
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(formatted)
	return err
}

func loadTemplate(settings Settings) (*template.Template, error) {
	if settings.TemplateDir == "" {
		return template.New("driver").Parse(builtinTemplate)
	}

	path := filepath.Join(settings.TemplateDir, "driver.tmpl")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return template.New("driver").Parse(builtinTemplate)
		}
		return nil, err
	}
	return template.New("driver").Parse(string(data))
}

// PrintCategory writes mask as a Go expression of category.Category
// bit constants OR'd together, in the style of
// github.com/clipperhouse/uax29/v2's gen/print.go literal printer
// (there for unicode.RangeTable values, here for bitmask literals).
func PrintCategory(w io.Writer, mask category.Category) {
	first := true
	for bit := category.Category(1); bit != 0; bit <<= 1 {
		if mask&bit == 0 {
			continue
		}
		ident, _, ok := category.Identifier(bit)
		if !ok {
			continue
		}
		if !first {
			fmt.Fprint(w, " | ")
		}
		fmt.Fprintf(w, "category.%s", ident)
		first = false
	}
	if first {
		fmt.Fprint(w, "0")
	}
}
