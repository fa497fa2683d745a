package assert

import "github.com/oomph-ac/yamato/oerror"

// IsTrue panics with a formatted oerror.Error when ok is false. It guards states that can only be
// reached through a programming error, never through user input.
func IsTrue(ok bool, message string, args ...any) {
	if !ok {
		panic(oerror.New(message, args...))
	}
}
