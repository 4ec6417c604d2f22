// Command demo runs a shell under a pty and drives the vt package with its
// output, rendering the resulting grid back to the real terminal. It is a
// minimal host, not a full terminal application: no scrollback view and no
// mouse reporting. Keyboard input is copied from stdin to the pty
// unchanged, so only Input, Resize and the grid, cursor and damage
// accessors are exercised; Key, Mouse, Focus, Paste and Blink are not.
package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/creack/pty"
	"golang.org/x/term"

	"vt"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "demo:", err)
		os.Exit(1)
	}
}

func run() error {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}
	cmd := exec.Command(shell)

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return fmt.Errorf("starting pty: %w", err)
	}
	defer ptmx.Close()

	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	defer term.Restore(int(os.Stdin.Fd()), oldState)

	cols, rows, err := pty.Getsize(os.Stdout)
	if err != nil {
		cols, rows = 80, 24
	}

	cfg := vt.DefaultConfig()
	terminal := vt.New(cols, rows, 10, 20, cfg)
	var mu sync.Mutex // the Terminal is used by one goroutine at a time

	winch := make(chan os.Signal, 1)
	signal.Notify(winch, syscall.SIGWINCH)
	go func() {
		for range winch {
			cols, rows, err := pty.Getsize(os.Stdout)
			if err != nil {
				continue
			}
			pty.Setsize(ptmx, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
			mu.Lock()
			terminal.Resize(cols, rows)
			mu.Unlock()
		}
	}()
	winch <- syscall.SIGWINCH // trigger an initial resize

	go io.Copy(ptmx, os.Stdin)

	buf := make([]byte, 4096)
	for {
		n, err := ptmx.Read(buf)
		if n > 0 {
			mu.Lock()
			actions := terminal.Input(buf[:n])
			applyActions(ptmx, actions)
			render(terminal)
			mu.Unlock()
		}
		if err != nil {
			break
		}
	}
	return nil
}

// applyActions writes device replies back to the pty and prints a title
// change or bell the way a minimal host is expected to (spec.md §4.9
// "Action").
func applyActions(ptmx *os.File, actions []vt.Action) {
	for _, a := range actions {
		switch v := a.(type) {
		case vt.ActionReply:
			ptmx.Write(v.Bytes)
		case vt.ActionTitle:
			fmt.Fprintf(os.Stderr, "\x1b]0;%s\x07", v.Title)
		case vt.ActionUrgent:
			fmt.Fprint(os.Stderr, "\a")
		}
	}
}

// render repaints every dirty row using SGR true-color codes resolved
// from each cell's interned style, then homes the cursor to the
// terminal's reported position.
func render(t *vt.Terminal) {
	lines := t.Touched().Lines()
	if len(lines) == 0 {
		return
	}

	var b strings.Builder
	grid := t.Grid()
	for _, y := range lines {
		fmt.Fprintf(&b, "\x1b[%d;1H\x1b[K", y+1)
		row := grid.Row(y)
		var lastStyle *vt.Style
		for x := 0; x < row.Len(); x++ {
			cell := row.At(x)
			if cell.IsReference() {
				continue
			}
			if cell.Style() != lastStyle {
				writeSGR(&b, cell.Style())
				lastStyle = cell.Style()
			}
			b.WriteString(cell.Value())
		}
	}
	cursor := t.Cursor()
	fmt.Fprintf(&b, "\x1b[%d;%dH", cursor.Y+1, cursor.X+1)
	os.Stdout.WriteString(b.String())
}

func writeSGR(b *strings.Builder, style *vt.Style) {
	b.WriteString("\x1b[0")
	if style.Attrs.Has(vt.AttrBold) {
		b.WriteString(";1")
	}
	if style.Attrs.Has(vt.AttrUnderline) {
		b.WriteString(";4")
	}
	if style.Attrs.Has(vt.AttrReverse) {
		b.WriteString(";7")
	}
	if style.Foreground != nil {
		r, g, bl, _ := style.Foreground.RGBA()
		fmt.Fprintf(b, ";38;2;%d;%d;%d", r, g, bl)
	}
	if style.Background != nil {
		r, g, bl, _ := style.Background.RGBA()
		fmt.Fprintf(b, ";48;2;%d;%d;%d", r, g, bl)
	}
	b.WriteString("m")
}
