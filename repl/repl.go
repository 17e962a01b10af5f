// Package repl implements an interactive MiniPar session: readline-backed
// line editing and history, colorized diagnostics, and a persistent
// executor so variables and function definitions survive across inputs.
// Because a single MiniPar statement can span many lines (an if, a
// while, a par block), the loop buffers input until braces balance
// before handing it to the parser.
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/minipar-lang/minipar/executor"
	"github.com/minipar-lang/minipar/parser"
	"github.com/minipar-lang/minipar/semantic"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl is a configured interactive session.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	License string
	Prompt  string
}

// New creates a Repl with the given banner chrome and prompt string.
func New(banner, version, author, line, license, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, License: license, Prompt: prompt}
}

// PrintBannerInfo writes the startup banner and short usage hints to writer.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Welcome to MiniPar!")
	cyanColor.Fprintf(writer, "%s\n", "Type a statement and press enter; blocks may span multiple lines")
	cyanColor.Fprintf(writer, "%s\n", "Type '.exit' to quit")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start runs the read-eval-print loop until EOF or '.exit'. Variables and
// function definitions declared in one input remain visible to later
// ones, since a single executor.Executor persists across the session.
func (r *Repl) Start(in io.Reader, out io.Writer) {
	r.PrintBannerInfo(out)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		redColor.Fprintf(out, "readline: %v\n", err)
		return
	}
	defer rl.Close()

	exec := executor.New(out, in)
	var pending strings.Builder

	for {
		prompt := r.Prompt
		if pending.Len() > 0 {
			prompt = "... "
		}
		rl.SetPrompt(prompt)

		line, err := rl.Readline()
		if err != nil {
			out.Write([]byte("Good Bye!\n"))
			return
		}

		if pending.Len() == 0 && strings.TrimSpace(line) == ".exit" {
			out.Write([]byte("Good Bye!\n"))
			return
		}

		pending.WriteString(line)
		pending.WriteString("\n")

		if !balanced(pending.String()) {
			continue
		}

		src := pending.String()
		pending.Reset()
		if strings.TrimSpace(src) == "" {
			continue
		}

		rl.SaveHistory(strings.TrimSpace(src))
		r.evalOne(out, exec, src)
	}
}

// evalOne runs src through the full pipeline against the session's
// persistent executor, reporting whichever phase fails in red and
// leaving the session usable for the next input.
func (r *Repl) evalOne(out io.Writer, exec *executor.Executor, src string) {
	mod, err := parser.New(src).Parse()
	if err != nil {
		redColor.Fprintf(out, "[syntax] %v\n", err)
		return
	}
	if err := semantic.New().Analyze(mod); err != nil {
		redColor.Fprintf(out, "[semantic] %v\n", err)
		return
	}
	if err := exec.Run(mod); err != nil {
		redColor.Fprintf(out, "[runtime] %v\n", err)
	}
}

// balanced reports whether src has no unclosed "{" — a cheap
// approximation that ignores braces inside string literals, which is
// adequate for an interactive line-buffering heuristic.
func balanced(src string) bool {
	depth := 0
	inString := false
	for _, r := range src {
		switch r {
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
			}
		}
	}
	return depth <= 0
}
