package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Help(ctx context.Context) error
	Token(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
	List(ctx context.Context) error
	Export(ctx context.Context) error
	Rename(ctx context.Context, key string) error
	Links(ctx context.Context, key string) error
	Serve(ctx context.Context) error
}

// dispatch runs one command. quit reports that the user asked to leave.
func dispatch(ctx context.Context, a execIface, cmd string, args []string, w io.Writer) (quit bool, err error) {
	switch cmd {
	case "help":
		return false, a.Help(ctx)
	case "token":
		return false, a.Token(ctx)
	case "logout":
		return false, a.Logout(ctx)
	case "status":
		return false, a.Status(ctx)
	case "ls", "list":
		return false, a.List(ctx)
	case "export":
		return false, a.Export(ctx)
	case "rename", "links":
		if len(args) == 0 {
			fmt.Fprintf(w, "Usage: %s <id>\n", cmd)
			return false, ErrUsage
		}
		if cmd == "rename" {
			return false, a.Rename(ctx, args[0])
		}
		return false, a.Links(ctx, args[0])
	case "serve":
		return false, a.Serve(ctx)
	case "exit", "quit":
		fmt.Fprintln(w, "Bye!")
		return true, nil
	default:
		fmt.Fprintln(w, "Unknown command:", cmd)
		return false, fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
	}
}

// runREPL starts a simple read–eval–print loop for the sx CLI.
//
// It reads a line from reader, parses the first token as the command and
// the rest as its arguments, and dispatches to methods on 'a'. The loop
// exits on end of input, when ctx is done, or when the user types "exit"
// or "quit".
//
// Any errors returned by command handlers are ignored here; handlers print
// their own messages. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, reader *bufio.Reader, w io.Writer) {
	for ctx.Err() == nil {
		fmt.Fprint(w, "sx> ")
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			fmt.Fprintln(w)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		if quit, _ := dispatch(ctx, a, parts[0], parts[1:], w); quit {
			return
		}
	}
}
