package server

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nostromo/mother/internal/console"
)

// handleConsole runs a console session over a websocket. Text frames in are input lines;
// every console event goes out as a JSON frame.
func (s *Server) handleConsole(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrading connection", zap.Error(err))
		return
	}
	logger := s.logger.With(zap.String("remote_addr", r.RemoteAddr))
	logger.Debug("console session opened")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)
	inputs := make(chan string)

	g.Go(func() error {
		defer close(inputs)
		for {
			messageType, data, err := conn.ReadMessage()
			if err != nil {
				return errors.Wrap(err, "reading frame")
			}
			if messageType != websocket.TextMessage {
				continue
			}
			select {
			case inputs <- string(data):
			case <-ctx.Done():
				return nil
			}
		}
	})

	g.Go(func() error {
		// Unblocks the reader once the session is over.
		defer conn.Close()
		runner := console.NewRunner(s.newConsole(), s.clock)
		var writeErr error
		err := runner.Run(ctx, inputs, func(events []console.Event) {
			for _, event := range events {
				if writeErr != nil {
					return
				}
				if writeErr = conn.WriteJSON(event); writeErr != nil {
					cancel()
				}
			}
		})
		if writeErr != nil {
			return errors.Wrap(writeErr, "writing frame")
		}
		return err
	})

	err = g.Wait()
	switch {
	case err == nil, errors.Is(err, context.Canceled), websocket.IsCloseError(errors.Cause(err), websocket.CloseNormalClosure, websocket.CloseGoingAway):
		logger.Debug("console session closed")
	default:
		logger.Warn("console session failed", zap.Error(err))
	}
}
