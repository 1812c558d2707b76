package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Start     func(StartArgs) (Result, error)
	Interrupt func() (Result, error)
	Show      func(ShowArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeStart:
		if handlers.Start == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "start handler not configured"}
		}
		return handlers.Start(*cmd.Start)
	case TypeInterrupt:
		if handlers.Interrupt == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "interrupt handler not configured"}
		}
		return handlers.Interrupt()
	case TypeShow:
		if handlers.Show == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "show handler not configured"}
		}
		return handlers.Show(*cmd.Show)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
