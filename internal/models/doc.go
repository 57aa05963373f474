// Package models defines the domain types shared by the command router, the list engine and the list store.
//
// The package contains three groups of types:
//
// 1. Persisted lists
//   - [ListKind] : which list family a document belongs to (reminders or replies)
//   - [ListKey] : the address of one list document (kind + owner)
//   - [ItemList] : the ordered, 1-based-for-display sequence of item texts
//
// 2. Commands
//   - [Action] : the closed set of list actions decoded from the second word of a command
//   - [Message] : an inbound chat message after mention stripping
//
// 3. Replies
//   - [Chunk] : one outbound reply unit; a single response may be several chunks
//   - [Card] : a hero card attached to card and carousel chunks
//
// Reminders are keyed by the sender's user id. The reply list is a singleton stored under [GlobalOwner].
package models
