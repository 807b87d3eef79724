package face

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// File is a parsed face file: a single top-level list.
type File struct {
	Root *List `@@`
}

// List is a parenthesised form whose first element is a symbol.
// Example: (pivot 0.5 0.5)
type List struct {
	Pos   lexer.Position
	Head  string  `LParen @Ident`
	Items []*Node `@@* RParen`
}

// Node is one element of a list.
type Node struct {
	Pos    lexer.Position
	List   *List    `  @@`
	String *string  `| @String`
	Number *float64 `| @Number`
	Symbol *string  `| @Ident`
}

// Lists returns the sub-lists of l in order.
func (l *List) Lists() []*List {
	var lists []*List
	for _, n := range l.Items {
		if n.List != nil {
			lists = append(lists, n.List)
		}
	}
	return lists
}

// Find returns the first sub-list with the given head.
func (l *List) Find(head string) (*List, bool) {
	for _, sub := range l.Lists() {
		if sub.Head == head {
			return sub, true
		}
	}
	return nil, false
}

// FindAll returns every sub-list with the given head.
func (l *List) FindAll(head string) []*List {
	var found []*List
	for _, sub := range l.Lists() {
		if sub.Head == head {
			found = append(found, sub)
		}
	}
	return found
}

// kind names the node type for error messages.
func (n *Node) kind() string {
	switch {
	case n.List != nil:
		return "list"
	case n.String != nil:
		return "string"
	case n.Number != nil:
		return "number"
	default:
		return "symbol"
	}
}
