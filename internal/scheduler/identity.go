package scheduler

import "strings"

// CustomKeyPrefix marks identity keys derived from operator-supplied names.
// Caller-derived keys are raw platform user ids (numeric snowflakes on
// Discord), so prefixed keys can never collide with them.
const CustomKeyPrefix = "name:"

// Identity is the party a booking or removal applies to.
type Identity struct {
	// Key groups bookings belonging to the same party.
	Key string
	// DisplayName is the label shown in listings and replies.
	DisplayName string
	// Custom reports whether the identity was supplied by name rather than
	// derived from the authenticated caller.
	Custom bool
}

// ResolveIdentity picks the identity an operation applies to. Without a
// custom name the caller acts on themself. A custom name maps to a
// deterministic slugged key, so repeated add/remove pairs for the same name
// always hit the same bookings regardless of who issues them.
func ResolveIdentity(callerID, callerName, customName string) Identity {
	if customName == "" {
		return Identity{Key: callerID, DisplayName: callerName}
	}
	return Identity{
		Key:         CustomKeyPrefix + slugify(customName),
		DisplayName: customName,
		Custom:      true,
	}
}

// slugify lowercases the name and replaces every character outside [a-z0-9]
// with an underscore.
func slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
