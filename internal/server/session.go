package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ziadkadry99/diana/internal/analysis"
	"github.com/ziadkadry99/diana/internal/render"
	"github.com/ziadkadry99/diana/internal/view"
)

// maxMessageBytes leaves room for a base64 encoded image at the size limit.
const maxMessageBytes = analysis.MaxFileSize/3*4 + 1<<20

// allowOrigin accepts websocket upgrades from the page this server serves
// and from local origins, or from anywhere with AllowAll. Browsers do not
// apply CORS to upgrades, so the check has to happen here. Requests without
// an Origin header do not come from a browser page.
func (s *Server) allowOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if s.cfg.AllowAll || origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}
	if strings.EqualFold(u.Host, r.Host) {
		return true
	}
	switch u.Hostname() {
	case "localhost", "127.0.0.1", "::1":
		return true
	}
	return false
}

// eventMessage is the incoming WebSocket message format. Path lists the
// ids from the event target outwards.
type eventMessage struct {
	Path  []string          `json:"path"`
	Event string            `json:"event"`
	Value string            `json:"value,omitempty"`
	Form  map[string]string `json:"form,omitempty"`
	Files []fileMessage     `json:"files,omitempty"`
}

type fileMessage struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
	// Data is base64 encoded and absent when the browser declined to send
	// an oversize file.
	Data string `json:"data,omitempty"`
}

// frame is the outgoing WebSocket message format.
type frame struct {
	Type    string `json:"type"` // "document", "patch" or "error"
	Session string `json:"session,omitempty"`
	Error   string `json:"error,omitempty"`
	// A document frame carries the whole body in Patch.HTML.
	*render.Patch
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: s.allowOrigin}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageBytes)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	sess := s.newSession(ctx)
	log := s.log.With(zap.String("session", sess.ID))

	out := make(chan frame, 64)
	send := func(f frame) {
		select {
		case out <- f:
		case <-ctx.Done():
		}
	}

	// The loop is not running yet, so the document can be read here.
	send(frame{Type: "document", Session: sess.ID, Patch: &render.Patch{HTML: sess.Doc.HTML()}})
	sess.Doc.OnPatch(func(p render.Patch) { send(frame{Type: "patch", Patch: &p}) })

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for {
			select {
			case f := <-out:
				if err := conn.WriteJSON(f); err != nil {
					log.Debug("websocket write", zap.Error(err))
					cancel()
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	runDone := make(chan error, 1)
	go func() { runDone <- sess.Run(ctx) }()
	log.Info("browser session opened")

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("websocket read", zap.Error(err))
			}
			break
		}

		var ev eventMessage
		if err := json.Unmarshal(msg, &ev); err != nil {
			send(frame{Type: "error", Error: "invalid message format"})
			continue
		}
		if len(ev.Path) == 0 || ev.Event == "" {
			send(frame{Type: "error", Error: "path and event are required"})
			continue
		}
		payload, err := ev.payload()
		if err != nil {
			send(frame{Type: "error", Error: "invalid file data"})
			continue
		}
		sess.DispatchPath(ev.Path, view.Event(ev.Event), payload)
	}

	cancel()
	<-runDone
	<-writerDone
	log.Info("browser session closed")
}

func (ev eventMessage) payload() (view.Payload, error) {
	p := view.Payload{Value: ev.Value, Form: ev.Form}
	for _, fm := range ev.Files {
		var data []byte
		if fm.Data != "" {
			var err error
			data, err = base64.StdEncoding.DecodeString(fm.Data)
			if err != nil {
				return view.Payload{}, err
			}
		}
		p.Files = append(p.Files, view.File{
			Name: fm.Name,
			Type: fm.Type,
			Size: fm.Size,
			Open: func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(data)), nil },
		})
	}
	return p, nil
}
