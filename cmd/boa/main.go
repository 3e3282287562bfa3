package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	boa "github.com/m4rcel-lol/Boa"
)

const (
	appName     = "boa"
	historyFile = ".boa_history"
	promptMain  = ">>> "
	promptCont  = "... "
)

func usage() {
	fmt.Printf(`Boa Language Interpreter v%s
Usage:
  %s                   Start interactive REPL
  %s <file.boa>        Run a Boa script
  %s --help            Show this help
  %s --version         Show version
`, boa.Version, appName, appName, appName, appName)
}

func main() {
	if len(os.Args) == 1 {
		os.Exit(runRepl())
	}

	arg := os.Args[1]
	switch arg {
	case "--help", "-h":
		usage()
		return
	case "--version", "-v":
		fmt.Printf("Boa v%s\n", boa.Version)
		return
	}

	os.Exit(runFile(arg))
}

// -----------------------------------------------------------------------------
// run a script file
// -----------------------------------------------------------------------------

func runFile(path string) int {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, path, err)
		return 1
	}

	ip := boa.NewInterpreter()
	ip.SetBaseDir(filepath.Dir(path))

	if _, err := ip.Run(string(src), path); err != nil {
		fmt.Fprintln(os.Stderr, boa.WrapErrorWithName(err, path, string(src)).Error())
		return 1
	}
	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

const helpText = `REPL commands:
  :help            Show this help
  :run <file>      Run a Boa script file in a fresh interpreter
  :load <file>     Load and execute a file in the current session
  :doc <symbol>    Show the type of a global symbol
  :quit            Exit the REPL
`

func runRepl() int {
	fmt.Printf("Boa v%s REPL (type :help for commands, Ctrl+D to exit)\n", boa.Version)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	ip := boa.NewInterpreter()

	for {
		code, ok := readInput(ln)
		if !ok {
			fmt.Println("\nGoodbye!")
			return 0
		}
		if strings.TrimSpace(code) == "" {
			continue
		}

		if strings.HasPrefix(strings.TrimSpace(code), ":") {
			if quit := replCommand(ip, strings.TrimSpace(code)); quit {
				return 0
			}
			continue
		}

		v, err := ip.Run(code, "<repl>")
		if err != nil {
			fmt.Fprintln(os.Stderr, boa.WrapErrorWithName(err, "<repl>", code).Error())
			continue
		}
		if v.Tag != boa.VTNone {
			fmt.Println(boa.FormatValue(v))
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}
}

func replCommand(ip *boa.Interpreter, cmd string) (quit bool) {
	switch {
	case cmd == ":help":
		fmt.Print(helpText)
	case cmd == ":quit" || cmd == ":exit":
		return true
	case strings.HasPrefix(cmd, ":run "):
		runFile(strings.TrimSpace(strings.TrimPrefix(cmd, ":run ")))
	case strings.HasPrefix(cmd, ":load "):
		path := strings.TrimSpace(strings.TrimPrefix(cmd, ":load "))
		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot read %s: %v\n", path, err)
			return false
		}
		ip.SetBaseDir(filepath.Dir(path))
		if _, err := ip.Run(string(src), path); err != nil {
			fmt.Fprintln(os.Stderr, boa.WrapErrorWithName(err, path, string(src)).Error())
		}
	case strings.HasPrefix(cmd, ":doc "):
		sym := strings.TrimSpace(strings.TrimPrefix(cmd, ":doc "))
		if v, ok := ip.Lookup(sym); ok {
			fmt.Printf("%s : %s\n", sym, v.Tag.TypeName())
		} else {
			fmt.Printf("Symbol '%s' not found\n", sym)
		}
	default:
		fmt.Println("unknown command. Type :help for commands.")
	}
	return false
}

// readInput collects one unit of input. A line that opens an indented block
// (ends with ':') keeps prompting for continuation lines until an empty
// line closes the block.
func readInput(ln *liner.State) (string, bool) {
	line, err := ln.Prompt(promptMain)
	if errors.Is(err, io.EOF) {
		return "", false
	}
	if err != nil {
		return "", true
	}

	if !strings.HasSuffix(strings.TrimRight(line, " \t"), ":") {
		return line, true
	}

	var b strings.Builder
	b.WriteString(line)
	for {
		cont, err := ln.Prompt(promptCont)
		if errors.Is(err, io.EOF) || err != nil || cont == "" {
			break
		}
		b.WriteByte('\n')
		b.WriteString(cont)
	}
	return b.String(), true
}
