package workflow

// CanTransition reports whether the actor may change the status of a material
// on the given production line. Pure predicate, no side effects.
func CanTransition(actor Actor, line string) bool {
	switch actor.Role {
	case RoleOversight:
		return true
	case RoleLineOwner:
		return actor.HasLine(line)
	default:
		return false
	}
}

// CanView reports whether the actor may read a material. Requesters see only
// what they created themselves.
func CanView(actor Actor, line string, requester string) bool {
	switch actor.Role {
	case RoleOversight:
		return true
	case RoleLineOwner:
		return actor.HasLine(line)
	case RoleRequester:
		return actor.Identity != "" && actor.Identity == requester
	default:
		return false
	}
}
