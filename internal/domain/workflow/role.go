package workflow

import (
	"fmt"
	"strings"
)

// Role is the capability tier of an actor.
type Role string

const (
	// RoleOversight may transition and view any material.
	RoleOversight Role = "oversight"
	// RoleLineOwner may transition and view materials on their assigned lines.
	RoleLineOwner Role = "line-owner"
	// RoleRequester may view their own requests and never transitions.
	RoleRequester Role = "requester"
)

// ParseRole resolves a role name. The legacy names from the spreadsheet-era
// deployment (jefa, practicante, ingeniero) are accepted as aliases.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(RoleOversight), "jefa":
		return RoleOversight, nil
	case string(RoleLineOwner), "lineowner", "practicante":
		return RoleLineOwner, nil
	case string(RoleRequester), "ingeniero":
		return RoleRequester, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// Actor is the explicit identity context passed into every engine and gate
// call. There is no ambient session state inside the core.
type Actor struct {
	Identity string
	Role     Role
	// Lines is the line set a line owner is responsible for. Ignored for the
	// other roles.
	Lines []string
}

// HasLine reports whether the actor's line set contains line.
func (a Actor) HasLine(line string) bool {
	for _, l := range a.Lines {
		if l == line {
			return true
		}
	}
	return false
}
