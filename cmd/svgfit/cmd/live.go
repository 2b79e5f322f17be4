// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"bytes"
	"log/slog"
	"net/http"

	"cogentcore.org/svgfit/base/errors"
	"cogentcore.org/svgfit/svg"
	"github.com/gorilla/websocket"
)

// liveError is the reply to a document that could not be fitted.
type liveError struct {
	Error string `json:"error"`
}

// handleLive fits documents sent over a websocket, for editors that
// refit as the document changes. Each text message is a whole SVG
// document, answered with its [Report] or a liveError.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{}
	conn, err := upgrader.Upgrade(w, r, nil)
	if errors.Log(err) != nil {
		return
	}
	defer conn.Close()
	conn.SetReadLimit(s.Config.Server.MaxBody)

	c, err := s.options(r)
	if err != nil {
		conn.WriteJSON(liveError{Error: err.Error()})
		return
	}
	id := requestIDFrom(r.Context())
	for {
		typ, msg, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Warn("live connection", "request", id, "err", err)
			}
			return
		}
		if typ != websocket.TextMessage {
			continue
		}
		var reply any
		sv, err := svg.ReadXML(bytes.NewReader(msg))
		if err == nil {
			reply, err = FitDocument(r.Context(), c, sv)
		}
		if err != nil {
			reply = liveError{Error: err.Error()}
		}
		if errors.Log(conn.WriteJSON(reply)) != nil {
			return
		}
	}
}
