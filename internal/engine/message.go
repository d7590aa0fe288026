package engine

import "github.com/joeycumines/go-ppsmc/internal/bdd"

// MessageKind distinguishes the two message shapes a Worker's mailbox
// carries (spec.md section 4.4, "a mailbox receiving {Data(BDD) | Quit}").
type MessageKind int

const (
	MsgData MessageKind = iota
	MsgQuit
)

// Message is one entry in a Worker's mailbox.
type Message struct {
	Kind MessageKind
	Data bdd.Bdd
}
