package parser

// NodeKind identifies the kind of a syntax node.
type NodeKind int

const (
	NodeFile NodeKind = iota
	NodeFamily
	NodeNotes
	NodeRelations
	NodePersonEvents
	NodeFamilyEvents
	NodeDatabaseNotes
	NodeExtendedPage
	NodeWizardNote
	NodeChild
	NodeRelation
	NodeEvent
	NodeWitness
	NodeComment
)

var nodeKindNames = map[NodeKind]string{
	NodeFile:          "File",
	NodeFamily:        "Family",
	NodeNotes:         "Notes",
	NodeRelations:     "Relations",
	NodePersonEvents:  "PersonEvents",
	NodeFamilyEvents:  "FamilyEvents",
	NodeDatabaseNotes: "DatabaseNotes",
	NodeExtendedPage:  "ExtendedPage",
	NodeWizardNote:    "WizardNote",
	NodeChild:         "Child",
	NodeRelation:      "Relation",
	NodeEvent:         "Event",
	NodeWitness:       "Witness",
	NodeComment:       "Comment",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Node is a node in the loosely structured syntax tree. Block nodes
// carry their header and body tokens; line-level constructs inside a
// block (children, relations, events, witnesses) become child nodes
// holding their own token slice.
type Node struct {
	Kind     NodeKind
	Pos      Position
	Tokens   []Token
	Children []*Node
}

func NewNode(kind NodeKind, pos Position) *Node {
	return &Node{Kind: kind, Pos: pos}
}

func (n *Node) AddToken(tok Token) {
	n.Tokens = append(n.Tokens, tok)
}

func (n *Node) AddChild(child *Node) {
	if child == nil {
		return
	}
	n.Children = append(n.Children, child)
}

func (n *Node) FirstChildOfKind(kind NodeKind) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind NodeKind) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

// FirstTokenOfKind returns the first token of the given kind directly
// on this node, or nil.
func (n *Node) FirstTokenOfKind(kind TokenKind) *Token {
	for i := range n.Tokens {
		if n.Tokens[i].Kind == kind {
			return &n.Tokens[i]
		}
	}
	return nil
}
