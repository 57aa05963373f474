// Package repositories implements SQLite persistence for the bot's item lists.
//
// [ListRepository] stores each list as one row of the item_lists table, addressed by (kind, owner):
//   - reminders: one row per user, owner = user id
//   - replies: a single row, owner = [models.GlobalOwner]
//
// Items are kept as a JSON array so that list order is exactly insertion order.
//
// # Consistency
//
// [ListRepository.UpdateList] performs read-modify-write inside one transaction while holding a per-key lock from [KeyedMutex],
// so two concurrent add/remove operations on the same list cannot drop each other's result.
// Operations on different keys never wait on each other.
package repositories
