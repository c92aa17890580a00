// Package command interprets the learner's control vocabulary (pause, resume,
// reset, back) and applies it to a countdown engine or a study scheduler.
package command

// Type enumerates the recognised control tokens.
type Type int

const (
	CmdPause Type = iota
	CmdResume
	CmdReset
	CmdBack
)

var tokens = map[string]Type{
	"pause":  CmdPause,
	"resume": CmdResume,
	"reset":  CmdReset,
	"back":   CmdBack,
}

// Parse maps a token to a command. Matching is exact and case-sensitive.
func Parse(token string) (Type, bool) {
	cmd, ok := tokens[token]
	return cmd, ok
}

// String returns the token for the command.
func (cmd Type) String() string {
	switch cmd {
	case CmdPause:
		return "pause"
	case CmdResume:
		return "resume"
	case CmdReset:
		return "reset"
	case CmdBack:
		return "back"
	}
	return "unknown"
}

// Command is the message a UI posts to a Loop. The optional Reply channel
// receives the interpreter's result.
type Command struct {
	Token string
	Reply chan Result
}
