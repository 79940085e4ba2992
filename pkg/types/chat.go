package types

// ChatMessage represents a message in a chat conversation
type ChatMessage struct {
	Role    string `json:"role"` // user, assistant, system
	Content string `json:"content"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// ValidRole reports whether role is one of the accepted chat roles.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

// VendorSource identifies one upstream vendor credential source.
type VendorSource struct {
	Name    string
	BaseURL string
	Token   string
}

// Resolvable reports whether this source carries a usable URL and token.
func (v VendorSource) Resolvable() bool {
	return v.BaseURL != "" && v.Token != ""
}
