package distill

// RuleAction is what happens to a node matched by a filter Rule.
type RuleAction int

// Rule actions.
const (
	// ActionRemove deletes the matched subtree.
	ActionRemove RuleAction = iota

	// ActionUnwrap replaces the matched node with its children,
	// flattening one structural level.
	ActionUnwrap
)

// String returns the action name for diagnostics.
func (a RuleAction) String() string {
	switch a {
	case ActionRemove:
		return "remove"
	case ActionUnwrap:
		return "unwrap"
	default:
		return "unknown"
	}
}

// Rule matches boilerplate nodes by CSS selector and says what to do
// with them.
type Rule struct {
	// Selector matches the nodes this rule applies to.
	Selector string

	// Action is applied to each match not protected by the
	// content-preservation heuristic.
	Action RuleAction

	// Description explains what the rule targets, for diagnostics.
	Description string
}
