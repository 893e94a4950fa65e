package ledger

// Level is the severity of a Notice.
type Level string

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
)

// Notice is a user-visible, non-fatal outcome of a ledger operation.
type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

func Success(msg string) Notice {
	return Notice{Level: LevelSuccess, Message: msg}
}

func Warning(msg string) Notice {
	return Notice{Level: LevelWarning, Message: msg}
}

// OK reports whether the operation was accepted.
func (n Notice) OK() bool {
	return n.Level == LevelSuccess
}

func (n Notice) String() string {
	return string(n.Level) + ": " + n.Message
}
