package workflow

// -----------------------------------------------------------------------------
// Node Types
// -----------------------------------------------------------------------------

// NodeType is the closed set of node kinds the bridge understands. Anything
// outside this set is a regular (non-trigger) node.
type NodeType string

const (
	NodeTypeChatTrigger     NodeType = "chatTrigger"
	NodeTypeFormTrigger     NodeType = "formTrigger"
	NodeTypeWebhookTrigger  NodeType = "webhookTrigger"
	NodeTypeManualTrigger   NodeType = "manualTrigger"
	NodeTypeScheduleTrigger NodeType = "scheduleTrigger"
)

// TriggerKind is the tagged variant of trigger types that accept a synthetic
// start payload.
type TriggerKind string

const (
	TriggerChat    TriggerKind = "chat"
	TriggerForm    TriggerKind = "form"
	TriggerWebhook TriggerKind = "webhook"
)

// TriggerKind maps a node type to the synthetic-start variant it accepts.
// The second return is false for node types that cannot be started
// synthetically.
func (t NodeType) TriggerKind() (TriggerKind, bool) {
	switch t {
	case NodeTypeChatTrigger:
		return TriggerChat, true
	case NodeTypeFormTrigger:
		return TriggerForm, true
	case NodeTypeWebhookTrigger:
		return TriggerWebhook, true
	default:
		return "", false
	}
}

// IsTrigger reports whether the node type is a workflow entry point.
func (t NodeType) IsTrigger() bool {
	switch t {
	case NodeTypeChatTrigger, NodeTypeFormTrigger, NodeTypeWebhookTrigger,
		NodeTypeManualTrigger, NodeTypeScheduleTrigger:
		return true
	default:
		return false
	}
}

// -----------------------------------------------------------------------------
// Definition
// -----------------------------------------------------------------------------

// Node is one node of a workflow graph. Identity is Name, unique within a
// workflow.
type Node struct {
	Name     string   `json:"name"`
	Type     NodeType `json:"type"`
	Disabled bool     `json:"disabled,omitempty"`
}

// Config is the workflow definition. It is immutable for the duration of one
// bridge invocation; the persistence layer owns it.
type Config struct {
	ID                     string `json:"id"`
	Name                   string `json:"name"`
	Nodes                  []Node `json:"nodes"`
	IsArchived             bool   `json:"isArchived"`
	AvailableForInvocation bool   `json:"availableForInvocation"`
}

// EnabledNodes returns the non-disabled nodes in definition order.
func (c *Config) EnabledNodes() []Node {
	nodes := make([]Node, 0, len(c.Nodes))
	for _, n := range c.Nodes {
		if !n.Disabled {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// CanRunManually reports whether the workflow has a startable entry point
// that is not gated on an external event.
func (c *Config) CanRunManually() bool {
	for _, n := range c.EnabledNodes() {
		if n.Type == NodeTypeManualTrigger {
			return true
		}
	}
	return false
}
