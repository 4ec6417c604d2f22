// Package vt implements the in-memory core of a DEC VT-style terminal
// emulator: a state machine that consumes a byte stream from a child
// process and a stream of user input events, and produces an evolving
// grid of styled cells plus a byte stream back to the child.
//
// This package contains:
//   - Cell, Row and Grid, the styled character grid with scrollback
//   - Cursor, Tabs and Touched, cursor travel, tab stops and damage tracking
//   - a SIXEL decoder that paints into cell-sized tiles
//   - Terminal, the state machine that ties the above together
//   - input encoders that turn key and mouse events into escape sequences
//
// It does not render anything, manage a pty, parse configuration files, or
// talk to the network; those are the responsibility of the caller. See
// cmd/demo for a minimal program that wires a real pty and a real host
// terminal to this package.
package vt
