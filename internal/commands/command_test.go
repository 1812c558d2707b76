package commands

import (
	"errors"
	"testing"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/start 25 write report", TypeStart},
		{"start 5m check e-mails", TypeStart},
		{"interrupt", TypeInterrupt},
		{"/show history", TypeShow},
		{"show HOME", TypeShow},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseStartArgs(t *testing.T) {
	cmd, err := Parse("/start 5m  Design   system ")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Start.Minutes != 5 || cmd.Start.Task != "Design system" {
		t.Fatalf("unexpected start args: %+v", cmd.Start)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		in   string
		code ErrorCode
	}{
		{"", ErrCodeEmptyInput},
		{"/", ErrCodeEmptyInput},
		{"/pause", ErrCodeUnknownCommand},
		{"start", ErrCodeInvalidArgument},
		{"start 25", ErrCodeInvalidArgument},
		{"start soon write", ErrCodeInvalidArgument},
		{"interrupt now", ErrCodeInvalidArgument},
		{"show", ErrCodeInvalidArgument},
		{"show settings", ErrCodeInvalidArgument},
	}
	for _, tc := range cases {
		_, err := Parse(tc.in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != tc.code {
			t.Fatalf("parse %q: expected %s, got %v", tc.in, tc.code, err)
		}
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/start 25 write docs")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Start: func(a StartArgs) (Result, error) {
			called = true
			if a.Task != "write docs" || a.Minutes != 25 {
				t.Fatalf("unexpected args: %+v", a)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	for _, in := range []string{"show history", "interrupt", "start 5 x"} {
		cmd, err := Parse(in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", in, err)
		}
		_, err = Execute(cmd, Handlers{})
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
			t.Fatalf("%q: expected missing handler error, got %v", in, err)
		}
	}
}
