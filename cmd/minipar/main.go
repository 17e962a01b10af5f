/*
Package main is the entry point for the MiniPar interpreter.
It supports five modes of operation:

 1. REPL mode (default, no arguments): interactive read-eval-print loop
 2. File mode: parse, check, and execute a MiniPar source file
 3. Server mode: accept TCP connections and give each its own REPL session
 4. Token mode (-tok): print the file's token stream
 5. Check mode (-ast): parse and check the file, print its statement count

The interpreter runs source through a lexer -> parser -> semantic analyzer
-> executor pipeline.
*/
package main

import (
	"fmt"
	"net"
	"os"

	"github.com/fatih/color"

	"github.com/minipar-lang/minipar/executor"
	"github.com/minipar-lang/minipar/lexer"
	"github.com/minipar-lang/minipar/parser"
	"github.com/minipar-lang/minipar/repl"
	"github.com/minipar-lang/minipar/semantic"
)

var (
	// VERSION is the current version of the MiniPar interpreter.
	VERSION = "v1.0.0"
	// AUTHOR is shown in the REPL banner and --version output.
	AUTHOR = "minipar-lang"
	// LICENSE is the software license under which MiniPar is distributed.
	LICENSE = "MIT"
	// PROMPT is the command prompt displayed in REPL mode.
	PROMPT = "minipar >>> "
	// LINE is a separator used for visual formatting in the REPL banner.
	LINE = "----------------------------------------------------------------"
	// BANNER is the ASCII art logo shown when the REPL starts.
	BANNER = `
  __  __ _       _ ____
 |  \/  (_)_ __ (_)  _ \ __ _ _ __
 | |\/| | | '_ \| | |_) / _' | '__|
 | |  | | | | | | |  __/ (_| | |
 |_|  |_|_|_| |_|_|_|   \__,_|_|
`
)

var (
	redColor    = color.New(color.FgRed)
	yellowColor = color.New(color.FgYellow)
	cyanColor   = color.New(color.FgCyan)
)

// main dispatches on os.Args:
//
//	minipar                 start the REPL on stdin/stdout
//	minipar <file>          run a MiniPar source file
//	minipar -tok <file>     print the file's token stream and exit
//	minipar -ast <file>     type-check the file and print its top-level statement count
//	minipar server <port>   start a REPL server on the given port
//	minipar --help          show usage
//	minipar --version       show version info
func main() {
	if len(os.Args) < 2 {
		repler := repl.New(BANNER, VERSION, AUTHOR, LINE, LICENSE, PROMPT)
		repler.Start(os.Stdin, os.Stdout)
		return
	}

	switch arg := os.Args[1]; arg {
	case "--help", "-h":
		showHelp()
	case "--version", "-v":
		showVersion()
	case "server":
		if len(os.Args) < 3 {
			redColor.Fprintf(os.Stderr, "usage: minipar server <port>\n")
			os.Exit(1)
		}
		startServer(os.Args[2])
	case "-tok":
		if len(os.Args) < 3 {
			redColor.Fprintf(os.Stderr, "usage: minipar -tok <file>\n")
			os.Exit(1)
		}
		runTokenize(os.Args[2])
	case "-ast":
		if len(os.Args) < 3 {
			redColor.Fprintf(os.Stderr, "usage: minipar -ast <file>\n")
			os.Exit(1)
		}
		runCheck(os.Args[2])
	default:
		runFile(arg)
	}
}

func showHelp() {
	cyanColor.Println("MiniPar - a small statically-typed language with par/seq blocks and TCP channels")
	cyanColor.Println("")
	cyanColor.Println("USAGE:")
	yellowColor.Println("  minipar                   Start interactive REPL mode")
	yellowColor.Println("  minipar <path-to-file>    Execute a MiniPar file (.mp)")
	yellowColor.Println("  minipar -tok <file>       Print the file's token stream")
	yellowColor.Println("  minipar -ast <file>       Type-check the file and print its statement count")
	yellowColor.Println("  minipar server <port>     Start a REPL server on the given port")
	yellowColor.Println("  minipar --help            Display this help message")
	yellowColor.Println("  minipar --version         Display version information")
}

func showVersion() {
	cyanColor.Println("MiniPar - an interpreted imperative language")
	cyanColor.Printf("Version: %s\n", VERSION)
	cyanColor.Printf("License: %s\n", LICENSE)
	cyanColor.Printf("Author : %s\n", AUTHOR)
}

func readSource(fileName string) string {
	content, err := os.ReadFile(fileName)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[FILE ERROR] could not read file %q: %v\n", fileName, err)
		os.Exit(1)
	}
	return string(content)
}

// runTokenize prints every token the lexer produces for fileName, one per
// line, then exits. It never reaches the parser.
func runTokenize(fileName string) {
	src := readSource(fileName)
	for _, tok := range lexer.New(src).Tokens() {
		fmt.Printf("%-10s %-12s line %d\n", tok.Tag, tok.Value, tok.Line)
	}
}

// runCheck parses and semantically checks fileName, printing the module's
// top-level statement count on success, or the first error on failure.
// It does not execute the program.
func runCheck(fileName string) {
	src := readSource(fileName)
	mod, err := parser.New(src).Parse()
	if err != nil {
		redColor.Fprintf(os.Stderr, "[PARSE ERROR] %v\n", err)
		os.Exit(1)
	}
	if err := semantic.New().Analyze(mod); err != nil {
		redColor.Fprintf(os.Stderr, "[SEMANTIC ERROR] %v\n", err)
		os.Exit(1)
	}
	yellowColor.Printf("OK: %d top-level statement(s)\n", len(mod.Stmts))
}

// runFile parses, checks, and executes fileName against stdin/stdout.
func runFile(fileName string) {
	src := readSource(fileName)
	executeWithRecovery(src, os.Stdin, os.Stdout)
}

// executeWithRecovery runs the full pipeline over src and reports whichever
// phase fails. A defer/recover guards against any panic escaping the
// executor (e.g. an unrecovered programming error in a goroutine-free
// path) so the process always exits cleanly with a diagnostic.
func executeWithRecovery(src string, in *os.File, out *os.File) {
	defer func() {
		if r := recover(); r != nil {
			redColor.Fprintf(os.Stderr, "[RUNTIME ERROR] %v\n", r)
			os.Exit(1)
		}
	}()

	mod, err := parser.New(src).Parse()
	if err != nil {
		redColor.Fprintf(os.Stderr, "[SYNTAX ERROR] %v\n", err)
		os.Exit(1)
	}

	if err := semantic.New().Analyze(mod); err != nil {
		redColor.Fprintf(os.Stderr, "[SEMANTIC ERROR] %v\n", err)
		os.Exit(1)
	}

	exec := executor.New(out, in)
	if err := exec.Run(mod); err != nil {
		redColor.Fprintf(os.Stderr, "[RUNTIME ERROR] %v\n", err)
		os.Exit(1)
	}
}

// startServer listens on port and gives each accepted connection its own
// REPL session, with the socket doubling as both input and output.
func startServer(port string) {
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[SERVER ERROR] failed to listen on port %s: %v\n", port, err)
		os.Exit(1)
	}
	defer listener.Close()
	cyanColor.Printf("MiniPar REPL server listening on :%s\n", port)

	for {
		conn, err := listener.Accept()
		if err != nil {
			redColor.Fprintf(os.Stderr, "[SERVER ERROR] accept: %v\n", err)
			continue
		}
		go handleClient(conn)
	}
}

func handleClient(conn net.Conn) {
	defer conn.Close()
	cyanColor.Printf("client connected from %s\n", conn.RemoteAddr())
	repler := repl.New(BANNER, VERSION, AUTHOR, LINE, LICENSE, PROMPT)
	repler.Start(conn, conn)
	cyanColor.Printf("client disconnected from %s\n", conn.RemoteAddr())
}
