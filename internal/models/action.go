package models

import "strings"

// Action is the list operation selected by the second word of a list command.
type Action int

const (
	ActionNone Action = iota
	ActionShow
	ActionAdd
	ActionRemove
	ActionUnrecognized
)

// ParseAction decodes an action token case-insensitively. An empty token is [ActionNone].
func ParseAction(token string) Action {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "":
		return ActionNone
	case "show":
		return ActionShow
	case "add":
		return ActionAdd
	case "remove":
		return ActionRemove
	default:
		return ActionUnrecognized
	}
}

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionShow:
		return "show"
	case ActionAdd:
		return "add"
	case ActionRemove:
		return "remove"
	}
	return "unrecognized"
}
