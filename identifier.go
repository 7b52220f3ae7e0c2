package fsm

// IsValidName reports whether name can be used as an event name. Names follow
// the usual identifier rules: a leading letter, underscore or dollar sign,
// followed by letters, digits, underscores or dollar signs.
func IsValidName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_' || c == '$':
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
