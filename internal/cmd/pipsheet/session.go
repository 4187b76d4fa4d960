package pipsheet

import (
	"context"
	"errors"
	"strings"

	"github.com/louisbranch/pipsheet/internal/sheet/engine"
)

// runSession feeds input lines to the engine loop until quit, end of input
// or cancellation of ctx. The loop autosaves on its ticker and saves once
// more on exit.
func runSession(ctx context.Context, eng *engine.Engine, con *console, cfg Config) error {
	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	con.feed(loopCtx)
	loop := engine.NewLoop(eng, cfg.Autosave)
	runErr := make(chan error, 1)
	go func() { runErr <- loop.Run(loopCtx) }()

	con.say("cli.session_ready")
	for {
		line, ok := con.readLine()
		if !ok {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}
		err := loop.Call(loopCtx, func(ctx context.Context, e *engine.Engine) {
			con.handle(ctx, e, cfg, line)
		})
		if err != nil {
			if loopCtx.Err() != nil {
				break
			}
			cancel()
			<-loop.Done()
			return err
		}
	}

	cancel()
	err := <-runErr
	con.say("cli.session_bye")
	return err
}

// handle runs one session command on the loop goroutine.
func (c *console) handle(ctx context.Context, e *engine.Engine, cfg Config, line string) {
	switch line {
	case "show":
		c.show(e.Tree())
	case "save":
		if cfg.ConfirmSave {
			e.RequestSave(ctx)
			return
		}
		if err := e.Save(ctx); err != nil {
			c.warn(err)
			return
		}
		c.say("cli.saved")
	case "reset":
		c.lastAnswer = false
		e.RequestReset(ctx)
		if c.lastAnswer {
			c.say("cli.reset_done")
		} else {
			c.say("cli.reset_cancelled")
		}
	default:
		if !strings.Contains(line, "=") {
			c.warn(errors.New(c.printer.Sprintf("cli.unknown_command", line)))
			return
		}
		if err := c.assign(e.Tree(), line); err != nil {
			c.warn(err)
		}
	}
}
