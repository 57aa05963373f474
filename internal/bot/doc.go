// Package bot turns inbound chat activities into replies.
//
// The [Adapt] family of functions preprocesses the raw activity: the bot's "@mention" is stripped
// and the message is reduced to a [models.Message].
//
// A [Router] then picks a handler by the first word of the text (case-insensitive).
// Unknown words fall through to the trigger-word check and finally to a random saved reply,
// so every message gets at least one chunk back.
package bot
