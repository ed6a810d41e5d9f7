package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/dshills/vimdent/internal/config"
	"github.com/dshills/vimdent/internal/renderer"
	"github.com/dshills/vimdent/internal/renderer/backend"
)

// Frame returns what the screen shows for the session now.
func (s *Session) Frame() renderer.Frame {
	sels := s.cursors.All()
	primary := s.cursors.Primary()

	spans := make([]renderer.Span, 0, len(sels))
	for _, sel := range sels {
		if sel.IsEmpty() {
			continue
		}
		spans = append(spans, renderer.Span{
			Start: s.buf.OffsetToPoint(sel.Start()),
			End:   s.buf.OffsetToPoint(sel.End()),
		})
	}

	head := s.buf.OffsetToPoint(primary.Head)
	name := s.name
	if s.IsModified() {
		name += " [+]"
	}
	if s.readOnly {
		name += " [ro]"
	}

	right := fmt.Sprintf("%d:%d  %s", head.Line+1, head.Column+1, name)
	if n := len(sels); n > 1 {
		right = fmt.Sprintf("%d cursors  %s", n, right)
	}

	return renderer.Frame{
		Buffer:      s.buf,
		Cursor:      head,
		Selections:  spans,
		TabSize:     s.Settings().TabSize,
		StatusLeft:  s.Status(),
		StatusRight: right,
	}
}

// Run drives the session from be until the quit command fires or ctx is
// done. The settings files, if any, are watched and reloaded while it
// runs.
func Run(ctx context.Context, be backend.Backend, s *Session) error {
	if err := be.Init(); err != nil {
		return NewOperationError("init", "terminal", err)
	}
	defer be.Shutdown()

	stop := context.AfterFunc(ctx, func() { be.Interrupt(ctx.Err()) })
	defer stop()

	if s.store != nil {
		cancel := s.store.Subscribe(func(config.Settings) { be.Interrupt(nil) })
		defer cancel()

		if len(s.store.Files()) > 0 {
			w, err := s.store.Watch(func(err error) {
				s.setStatus(fmt.Sprintf("settings not reloaded: %v", err))
				be.Interrupt(nil)
			})
			if err != nil {
				s.logger.Warn("watching settings: %v", err)
			} else {
				defer func() { _ = w.Close() }()
			}
		}
	}

	r := renderer.New(be)
	for {
		r.Draw(s.Frame())

		ev := be.PollEvent()
		switch ev.Type {
		case backend.EventKey:
			err := s.HandleKey(ev.Key)
			if errors.Is(err, ErrQuit) {
				return nil
			}
			if err != nil {
				return err
			}
		case backend.EventInterrupt:
			if ctx.Err() != nil {
				return nil
			}
		}
	}
}
