// Package ui implements an interactive terminal console for the bot using bubbletea's Elm architecture.
//
// The console has two views:
//  1. [ChatView] : type a message, it is dispatched through the command router and the reply chunks are appended to the transcript
//  2. [ListView] : browse the caller's reminders or the global replies with charmbracelet/bubbles/list
//
// The [Model] implements bubbletea's standard Init/Update/View pattern, receiving results via the [Msg] union type.
// Dispatch runs inside a [tea.Cmd], so slow collaborators (image search, dictionary) never block rendering.
//
// Chunks are rendered with lipgloss: text and markdown inline, cards and carousels as bordered boxes.
package ui
