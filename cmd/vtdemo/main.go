// Copyright 2022~2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command vtdemo runs a shell under a real PTY and feeds its output
// through a vtcore/terminal.Emulator, proving out the Host/BindingTable
// wiring end to end: keystrokes and PTY bytes flow through unmodified so
// the shell stays fully usable, while Ctrl-T dumps the emulator's own
// view of cursor position and active modes to stderr.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"unicode/utf8"

	"github.com/creack/pty"
	"golang.org/x/term"

	"github.com/wqhelper/vtcore/keytab"
	"github.com/wqhelper/vtcore/terminal"
	"github.com/wqhelper/vtcore/util"
)

const (
	_COMMAND_NAME = "vtdemo"
	ctrlT         = 0x14 // local escape: dump emulator diagnostics, not sent to the child
)

var usage = `Usage:
  ` + _COMMAND_NAME + ` [--verbose N] [--shell PATH] [--decrqcra]
Options:
      --verbose    verbose output mode (0-2)
      --shell      shell to run under the PTY (default $SHELL, else /bin/sh)
      --decrqcra   answer DECRQCRA checksum requests
`

// Config holds vtdemo's parsed flags (kept separate from flag.Parse so
// parseFlags stays testable without touching the process's real argv).
type Config struct {
	verbose  int
	shell    string
	decrqcra bool
	help     bool
}

func parseFlags(progname string, args []string) (*Config, string, error) {
	flagSet := flag.NewFlagSet(progname, flag.ContinueOnError)
	var buf bytes.Buffer
	flagSet.SetOutput(&buf)

	var conf Config
	flagSet.IntVar(&conf.verbose, "verbose", 0, "verbose output mode")
	flagSet.StringVar(&conf.shell, "shell", defaultShell(), "shell to run under the PTY")
	flagSet.BoolVar(&conf.decrqcra, "decrqcra", false, "answer DECRQCRA checksum requests")

	err := flagSet.Parse(args)
	if err != nil {
		return nil, buf.String(), err
	}
	return &conf, buf.String(), nil
}

func defaultShell() string {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}
	return "/bin/sh"
}

func main() {
	conf, out, err := parseFlags(os.Args[0], os.Args[1:])
	if err == flag.ErrHelp {
		fmt.Print(usage)
		return
	} else if err != nil {
		fmt.Printf("Hints: %s\n%s", out, usage)
		os.Exit(1)
	}

	if conf.verbose > 0 {
		util.Logger.SetLevel(slog.LevelDebug)
	}

	if err := run(conf); err != nil {
		util.Logger.Error("vtdemo exited", "err", err)
		os.Exit(1)
	}
}

func run(conf *Config) error {
	cmd := exec.Command(conf.shell)
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return fmt.Errorf("starting pty: %w", err)
	}
	defer ptmx.Close()

	cols, rows, err := term.GetSize(int(os.Stdin.Fd()))
	if err != nil {
		cols, rows = 80, 24
	}

	host := &demoHost{ptmx: ptmx, verbose: conf.verbose}
	e := terminal.NewEmulator(cols, rows, host)
	e.SetBindings(keytab.NewTable())
	e.SetDECRQCRAEnabled(conf.decrqcra)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGWINCH)
	go func() {
		for range sigCh {
			if c, r, err := term.GetSize(int(os.Stdin.Fd())); err == nil {
				pty.Setsize(ptmx, &pty.Winsize{Rows: uint16(r), Cols: uint16(c)})
				e.Resize(c, r)
			}
		}
	}()
	sigCh <- syscall.SIGWINCH // pick up the initial size

	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	defer term.Restore(int(os.Stdin.Fd()), oldState)

	done := make(chan struct{})
	go func() {
		defer close(done)
		copyOutput(os.Stdout, ptmx, e)
	}()
	copyInput(ptmx, os.Stdin, e)

	<-done
	_ = cmd.Wait() // reap the child; it has already exited by the time ptmx hits EOF
	return nil
}

// copyOutput tees PTY bytes to the real terminal (so the shell stays
// usable) while also feeding a decoded copy to the emulator so its state
// tracks what the child actually produced.
func copyOutput(w io.Writer, r io.Reader, e *terminal.Emulator) {
	buf := make([]byte, 4096)
	var pending []byte
	for {
		n, err := r.Read(buf)
		if n > 0 {
			w.Write(buf[:n])
			pending = append(pending, buf[:n]...)
			pending = feedDecoded(e, pending)
		}
		if err != nil {
			return
		}
	}
}

// feedDecoded decodes as many complete UTF-8 runes as pending currently
// holds and returns the undecoded remainder (a rune split across two PTY
// reads is common and must not be dropped).
func feedDecoded(e *terminal.Emulator, pending []byte) []byte {
	var runes []rune
	i := 0
	for i < len(pending) {
		r, size := utf8.DecodeRune(pending[i:])
		if r == utf8.RuneError && size <= 1 {
			if len(pending)-i < utf8.UTFMax {
				break // might be a split multi-byte rune, wait for more
			}
			size = 1 // genuinely invalid byte: consume and move on
		}
		runes = append(runes, r)
		i += size
	}
	if len(runes) > 0 {
		e.Feed(runes)
	}
	return append([]byte(nil), pending[i:]...)
}

// copyInput forwards stdin to the PTY verbatim, intercepting Ctrl-T as a
// local-only diagnostics trigger.
func copyInput(w io.Writer, r io.Reader, e *terminal.Emulator) {
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if buf[0] == ctrlT {
				dumpDiagnostics(e)
			} else {
				w.Write(buf[:n])
			}
		}
		if err != nil {
			return
		}
	}
}

func dumpDiagnostics(e *terminal.Emulator) {
	row, col := e.CursorPosition()
	var sample terminal.Binding
	var ok bool
	if b := e.Bindings(); b != nil {
		sample, ok = b.Lookup("Up", 0, 0)
	}
	fmt.Fprintf(os.Stderr, "\r\n[vtdemo] cursor=(%d,%d) ansi=%v insert=%v sample-Up-binding=%q(%v)\r\n",
		row, col, e.Mode(terminal.ModeAnsi), e.Mode(terminal.ModeInsert), sample.Text, ok)
}
