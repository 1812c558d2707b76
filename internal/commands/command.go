package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeStart     Type = "start"
	TypeInterrupt Type = "interrupt"
	TypeShow      Type = "show"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type StartArgs struct {
	Minutes int
	Task    string
}

type ShowArgs struct {
	Subject string
}

type Command struct {
	Type  Type
	Raw   string
	Start *StartArgs
	Show  *ShowArgs
}

var showSubjects = map[string]bool{"home": true, "history": true}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeStart:
		return parseStart(input, args)
	case TypeInterrupt:
		if len(args) > 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "interrupt takes no arguments"}
		}
		return Command{Type: TypeInterrupt, Raw: input}, nil
	case TypeShow:
		return parseShow(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// parseStart accepts "start <minutes> <task...>". Range checks are left to
// the form validation that runs before the store is called.
func parseStart(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "start requires minutes and a task"}
	}
	minutes, err := strconv.Atoi(strings.TrimSuffix(strings.ToLower(args[0]), "m"))
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid minutes: %s", args[0])}
	}
	task := strings.TrimSpace(strings.Join(args[1:], " "))
	return Command{Type: TypeStart, Raw: raw, Start: &StartArgs{Minutes: minutes, Task: task}}, nil
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "show requires one subject: home or history"}
	}
	subject := strings.ToLower(args[0])
	if !showSubjects[subject] {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown subject: %s", subject)}
	}
	return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Subject: subject}}, nil
}
