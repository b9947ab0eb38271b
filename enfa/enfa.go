package enfa

import "github.com/coregx/redosentinel/ast"

// StateID identifies a state within a Graph.
type StateID int32

// InvalidState marks an uninitialized or absent target.
const InvalidState StateID = -1

// ClassEdge is a consuming transition labelled by an alphabet class.
type ClassEdge struct {
	Class int
	To    StateID
}

// State is one ε-NFA state. Per spec §3, edges preserve the order in which
// alternatives/loops were built so that later ε-elimination (package
// ordered) can privilege the first/greedy alternative.
type State struct {
	ID      StateID
	Accept  bool
	Eps     []StateID   // ordered ε-targets
	Classes []ClassEdge // consuming transitions
	Span    ast.Span    // source span of the AST node that created this state
}

// Graph is a Thompson ε-NFA plus the alphabet it was built against.
type Graph struct {
	States   []State
	Start    StateID
	Accept   StateID
	Alphabet *Alphabet
}

func (g *Graph) newState(span ast.Span) StateID {
	id := StateID(len(g.States))
	g.States = append(g.States, State{ID: id, Span: span})
	return id
}

func (g *Graph) addEps(from, to StateID) {
	s := &g.States[from]
	s.Eps = append(s.Eps, to)
}

func (g *Graph) addClass(from StateID, class int, to StateID) {
	s := &g.States[from]
	s.Classes = append(s.Classes, ClassEdge{Class: class, To: to})
}

// State returns a pointer to the state with the given id.
func (g *Graph) State(id StateID) *State {
	return &g.States[id]
}

// NumStates returns the number of states in the graph.
func (g *Graph) NumStates() int {
	return len(g.States)
}
