package soft

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-theft-auto/glclass"
)

// The front end below is not a GLSL compiler. It catches the mistakes a
// driver would reject before any code generation (misplaced #version,
// unbalanced delimiters, missing semicolons, stray characters) and records
// the stage interface so the linker can match varyings. Diagnostics follow
// the "ERROR: 0:<line>: <message>" shape most drivers print.

var (
	versionRe = regexp.MustCompile(`^#version\s+(\d{3})(\s+(core|compatibility|es))?\s*$`)
	mainRe    = regexp.MustCompile(`\bvoid\s+main\s*\(\s*(void)?\s*\)\s*$`)
	layoutRe  = regexp.MustCompile(`^layout\s*\([^)]*\)\s*`)
)

// qualifiers that may precede the storage qualifier or the type.
var skippedQualifiers = map[string]bool{
	"flat": true, "smooth": true, "noperspective": true, "centroid": true,
	"highp": true, "mediump": true, "lowp": true, "invariant": true,
}

// declaration is a top-level in/out variable of a stage.
type declaration struct {
	typ  string
	name string
	line int
}

// shader is a stage that passed the front end.
type shader struct {
	stage   glclass.Stage
	inputs  []declaration
	outputs []declaration
	hasMain bool
}

type diagnostics []string

func (d *diagnostics) add(line int, format string, args ...any) {
	*d = append(*d, fmt.Sprintf("ERROR: 0:%d: %s", line, fmt.Sprintf(format, args...)))
}

func (d diagnostics) String() string {
	return strings.Join(d, "\n")
}

// compile runs the front end over one stage.
func compile(stage glclass.Stage, source string) (*shader, error) {
	var diags diagnostics

	text, ok := stripComments(strings.TrimRight(source, "\x00"))
	if !ok {
		diags.add(strings.Count(source, "\n")+1, "'/*' : unterminated comment")
		return nil, &glclass.CompileError{Stage: stage, Log: diags.String()}
	}
	text = checkDirectives(text, &diags)
	checkCharacters(text, &diags)
	sh := &shader{stage: stage}
	parseStructure(text, sh, &diags)

	if len(diags) > 0 {
		return nil, &glclass.CompileError{Stage: stage, Log: diags.String()}
	}
	return sh, nil
}

// stripComments blanks comments while keeping line numbers intact.
func stripComments(src string) (string, bool) {
	var b strings.Builder
	b.Grow(len(src))
	for i := 0; i < len(src); i++ {
		switch {
		case strings.HasPrefix(src[i:], "//"):
			for i < len(src) && src[i] != '\n' {
				i++
			}
			if i < len(src) {
				b.WriteByte('\n')
			}
		case strings.HasPrefix(src[i:], "/*"):
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				return "", false
			}
			comment := src[i : i+2+end+2]
			b.WriteString(strings.Repeat("\n", strings.Count(comment, "\n")))
			b.WriteByte(' ')
			i += len(comment) - 1
		default:
			b.WriteByte(src[i])
		}
	}
	return b.String(), true
}

// checkDirectives validates #version and blanks every preprocessor line.
func checkDirectives(text string, diags *diagnostics) string {
	lines := strings.Split(text, "\n")
	seenCode := false
	seenVersion := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if !strings.HasPrefix(trimmed, "#") {
			seenCode = true
			continue
		}
		lines[i] = ""
		if !strings.HasPrefix(trimmed, "#version") {
			continue
		}
		switch {
		case seenVersion:
			diags.add(i+1, "'#version' : directive repeated")
		case seenCode:
			diags.add(i+1, "'#version' : must occur first in shader")
		case !versionRe.MatchString(trimmed):
			diags.add(i+1, "'#version' : bad version directive %q", trimmed)
		}
		seenVersion = true
	}
	if !seenVersion {
		diags.add(1, "'' : missing #version directive")
	}
	return strings.Join(lines, "\n")
}

// checkCharacters rejects characters outside the GLSL character set.
func checkCharacters(text string, diags *diagnostics) {
	line := 1
	for _, r := range text {
		switch {
		case r == '\n':
			line++
		case r > 0x7f || strings.ContainsRune("@$`\"'\\", r):
			diags.add(line, "'%c' : unexpected character", r)
		}
	}
}

// parseStructure checks delimiter balance and statement termination, and
// collects top-level declarations and the main function.
func parseStructure(text string, sh *shader, diags *diagnostics) {
	type open struct {
		ch   byte
		line int
	}
	closers := map[byte]byte{')': '(', ']': '[', '}': '{'}

	var stack []open
	var segment strings.Builder
	segStart := 1
	line := 1
	braces := 0

	flush := func() string {
		s := strings.TrimSpace(segment.String())
		segment.Reset()
		segStart = line
		return s
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch c {
		case '\n':
			line++
			segment.WriteByte(c)
		case '(', '[':
			stack = append(stack, open{c, line})
			segment.WriteByte(c)
		case ')', ']':
			if len(stack) == 0 || stack[len(stack)-1].ch != closers[c] {
				diags.add(line, "'%c' : syntax error, unbalanced delimiter", c)
				return
			}
			stack = stack[:len(stack)-1]
			segment.WriteByte(c)
		case '{':
			if len(stack) > 0 && stack[len(stack)-1].ch != '{' {
				diags.add(line, "'{' : syntax error, unclosed '%c'", stack[len(stack)-1].ch)
				return
			}
			header := flush()
			if braces == 0 && mainRe.MatchString(header) {
				sh.hasMain = true
			}
			stack = append(stack, open{c, line})
			braces++
		case '}':
			if len(stack) == 0 || stack[len(stack)-1].ch != '{' {
				diags.add(line, "'}' : syntax error, unbalanced delimiter")
				return
			}
			if s := flush(); s != "" {
				diags.add(line, "'}' : syntax error, missing ';' after %q", lastToken(s))
			}
			stack = stack[:len(stack)-1]
			braces--
		case ';':
			if len(stack) > 0 && stack[len(stack)-1].ch != '{' {
				// for (init; cond; step) keeps going.
				if stack[len(stack)-1].ch == '(' {
					segment.WriteByte(c)
					continue
				}
				diags.add(line, "';' : syntax error, unclosed '%c'", stack[len(stack)-1].ch)
				return
			}
			start := segStart
			s := flush()
			if braces == 0 && s != "" {
				declare(s, start, sh)
			}
		default:
			segment.WriteByte(c)
		}
	}

	if len(stack) > 0 {
		top := stack[len(stack)-1]
		diags.add(top.line, "'%c' : syntax error, unexpected end of file", top.ch)
		return
	}
	if s := flush(); s != "" {
		diags.add(line, "'' : syntax error, missing ';' after %q", lastToken(s))
	}
}

// declare records a top-level in/out declaration.
func declare(stmt string, line int, sh *shader) {
	stmt = layoutRe.ReplaceAllString(stmt, "")
	fields := strings.Fields(stmt)

	var storage string
	var rest []string
	for i, f := range fields {
		if skippedQualifiers[f] {
			continue
		}
		if f == "in" || f == "out" {
			storage = f
			rest = fields[i+1:]
			break
		}
		return
	}
	var plain []string
	for _, f := range rest {
		if !skippedQualifiers[f] {
			plain = append(plain, f)
		}
	}
	if storage == "" || len(plain) < 2 {
		return
	}

	// "vColor, vTint" and "vW [2]" collapse to "vColor,vTint" and "vW[2]".
	for _, declarator := range strings.Split(strings.Join(plain[1:], ""), ",") {
		d := declaration{typ: plain[0], name: declarator, line: line}
		if i := strings.IndexByte(d.name, '['); i >= 0 {
			d.typ += d.name[i:]
			d.name = d.name[:i]
		}
		if d.name == "" {
			continue
		}
		if storage == "in" {
			sh.inputs = append(sh.inputs, d)
		} else {
			sh.outputs = append(sh.outputs, d)
		}
	}
}

func lastToken(s string) string {
	fields := strings.Fields(s)
	return fields[len(fields)-1]
}

// link checks that both stages have an entry point and that every fragment
// input is written by the vertex stage with the same type.
func link(vs, fs *shader) error {
	var diags []string
	for _, sh := range []*shader{vs, fs} {
		if !sh.hasMain {
			diags = append(diags, fmt.Sprintf("ERROR: %s shader: missing main function", sh.stage))
		}
	}

	outputs := make(map[string]declaration, len(vs.outputs))
	for _, d := range vs.outputs {
		outputs[d.name] = d
	}
	for _, in := range fs.inputs {
		out, ok := outputs[in.name]
		if !ok {
			diags = append(diags, fmt.Sprintf("ERROR: fragment input %q is not written by the vertex shader", in.name))
			continue
		}
		if out.typ != in.typ {
			diags = append(diags, fmt.Sprintf("ERROR: type mismatch for %q: vertex %s, fragment %s", in.name, out.typ, in.typ))
		}
	}

	if len(diags) > 0 {
		return &glclass.LinkError{Log: strings.Join(diags, "\n")}
	}
	return nil
}
