package vt

// Action is an event the core cannot satisfy by itself and hands back to
// the embedder instead (spec.md §4.9 "Action"): a title change, a request
// to resize the host window, clipboard text to place, or a bell/urgency
// hint. Terminal.Input returns a slice of these.
type Action interface{ isAction() }

// ActionTitle requests the window/tab title be set (OSC 0/1/2).
type ActionTitle struct{ Title string }

// ActionResize requests the host resize the terminal to Cols x Rows
// (DECCOLM, CSI ? 3 h / l: 132 or 80 columns).
type ActionResize struct{ Cols, Rows int }

// ActionCopy hands clipboard text to the embedder (OSC 52).
type ActionCopy struct{ Text string }

// ActionUrgent signals a bell (BEL) or urgency hint.
type ActionUrgent struct{}

// ActionReply carries bytes the embedder must write back to the pty, such
// as a DA1/DA2 device-attributes reply or a CPR cursor-position report
// (spec.md §4.7 "device status").
type ActionReply struct{ Bytes []byte }

func (ActionTitle) isAction()  {}
func (ActionResize) isAction() {}
func (ActionCopy) isAction()   {}
func (ActionUrgent) isAction() {}
func (ActionReply) isAction()  {}
