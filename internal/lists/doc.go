// Package lists implements the list command engine behind the "reminders" and "replies" commands.
//
// One [Engine] is built per [models.ListKind]. The engine resolves the list key from the inbound message with a [KeyFunc]:
//   - [PerUser] : one list per sender (reminders)
//   - [Singleton] : one process-wide list (replies)
//
// The engine keeps no list state between calls. Every operation reads the current list from the [Store],
// and mutations go through [Store.UpdateList] so the read and the write happen atomically for that one operation.
//
// # Replies
//
// Every operation returns the reply as a slice of [models.Chunk] and never an error.
// Usage mistakes become instructional replies, missing items become "no item" replies,
// and storage failures are logged and become a generic "Error on ..." reply.
//
// Show yields one chunk per item ("1. buy pizza") rather than one multi-line block,
// since the chat surface renders each chunk as its own message.
package lists
