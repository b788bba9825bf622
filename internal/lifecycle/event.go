package lifecycle

import (
	"sulu/internal/domain"
	"sulu/internal/ports"
)

// Kind identifies a lifecycle point of a unit of work
type Kind int

const (
	Persist   Kind = iota // draft node created or edited
	Rename                // draft node renamed in place
	Move                  // draft node moved under another parent
	Copy                  // draft subtree copied
	Reorder               // draft siblings reordered
	Remove                // draft subtree removed
	Publish               // draft localization published
	Unpublish             // live localization withdrawn
	PreFlush              // before the unit of work is committed
	Flush                 // after the unit of work was committed
)

func (k Kind) String() string {
	switch k {
	case Persist:
		return "persist"
	case Rename:
		return "rename"
	case Move:
		return "move"
	case Copy:
		return "copy"
	case Reorder:
		return "reorder"
	case Remove:
		return "remove"
	case Publish:
		return "publish"
	case Unpublish:
		return "unpublish"
	case PreFlush:
		return "pre-flush"
	case Flush:
		return "flush"
	default:
		return "unknown"
	}
}

// Kinds lists every kind in declaration order
var Kinds = []Kind{Persist, Rename, Move, Copy, Reorder, Remove, Publish, Unpublish, PreFlush, Flush}

// CopyPair links a copied draft node to its source
type CopyPair struct {
	SourceID string
	CopyID   string
}

// Event carries the state of one lifecycle point to the handlers
type Event struct {
	Kind Kind
	Tx   ports.Tx // nil for Flush, which runs after commit

	// Node is the draft node after the mutation; for Remove the node as it was
	Node *domain.Node
	// Previous is the draft node before the mutation, nil for new nodes
	Previous *domain.Node
	Locale   string

	Copies  []CopyPair // Copy: pairs in path order, parents first
	Removed []string   // Remove: ids of the removed subtree
	Touched []string   // PreFlush/Flush: ids touched by the unit of work
}

// IsNew reports whether the event concerns a newly created node
func (e *Event) IsNew() bool {
	return e.Previous == nil
}
