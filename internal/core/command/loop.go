package command

import (
	"context"
	"log"
	"time"
)

const enqueueTimeout = 150 * time.Millisecond

// Loop serializes commands from a UI onto one goroutine so that blocking
// transitions such as reset never run on the UI thread.
type Loop struct {
	interpreter *Interpreter
	commands    chan Command
	onResult    func(Result)
}

// NewLoop creates a loop for the interpreter. onResult, if not nil, is called
// on the loop goroutine after every command.
func NewLoop(interpreter *Interpreter, onResult func(Result)) *Loop {
	return &Loop{
		interpreter: interpreter,
		commands:    make(chan Command, 64),
		onResult:    onResult,
	}
}

// Run handles commands until ctx is cancelled.
func (loop *Loop) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-loop.commands:
			result := loop.interpreter.Handle(cmd.Token)
			if loop.onResult != nil {
				loop.onResult(result)
			}
			if cmd.Reply != nil {
				select {
				case cmd.Reply <- result:
				default:
				}
			}
		}
	}
}

// Enqueue posts a token without blocking the caller for long. The token is
// dropped and false returned if the loop stays busy.
func (loop *Loop) Enqueue(token string) bool {
	select {
	case loop.commands <- Command{Token: token}:
		return true
	case <-time.After(enqueueTimeout):
		log.Printf("command: enqueue timeout, dropping %q", token)
		return false
	}
}

// Do posts a token and waits for its result.
func (loop *Loop) Do(ctx context.Context, token string) (Result, error) {
	reply := make(chan Result, 1)
	select {
	case loop.commands <- Command{Token: token, Reply: reply}:
	case <-ctx.Done():
		return ResultContinue, ctx.Err()
	}
	select {
	case result := <-reply:
		return result, nil
	case <-ctx.Done():
		return ResultContinue, ctx.Err()
	}
}
