package models

// Message is an inbound chat message after preprocessing.
type Message struct {
	UserID         string
	UserName       string
	ConversationID string
	Text           string
}

// Account identifies a user or bot on the chat channel.
type Account struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Conversation is the reply address of an inbound message.
type Conversation struct {
	ID         string
	ServiceURL string
	Bot        Account
	User       Account
	ReplyToID  string
}
