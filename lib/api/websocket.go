package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/fosdem/glboot/lib/gldebug"
	"github.com/gorilla/websocket"
)

const (
	statsInterval = 2 * time.Second
	writeTimeout  = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(req *http.Request) bool {
		return true
	},
}

// Event is one websocket packet. Event is "stats" or "gl-debug".
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// @Summary	Open websocket for GL debug messages and realtime status
// @Router		/api/ws [get]
// @Param		Upgrade	header	string	true	"websocket"
// @Tags		base
// @Success	101
func (a *Api) handleWebsocket(w http.ResponseWriter, req *http.Request) {
	ws, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		a.logger.Warn("couldn't make websocket", "err", err)
		return
	}
	defer func(ws *websocket.Conn) {
		err := ws.Close()
		if err != nil {
			a.logger.Debug("could not close websocket", "err", err)
		}
	}(ws)

	messages, unsubscribe := a.debug.Subscribe()
	defer unsubscribe()

	a.setClient(ws, true)
	defer a.setClient(ws, false)

	go a.websocketWriter(ws, messages)

	for {
		_, msg, err := ws.ReadMessage()
		if err != nil {
			break
		}
		a.logger.Debug(fmt.Sprintf("received: %s", msg))
	}
}

func (a *Api) setClient(ws *websocket.Conn, connected bool) {
	a.mu.Lock()
	if connected {
		a.wsClients[ws] = true
	} else {
		delete(a.wsClients, ws)
	}
	n := len(a.wsClients)
	a.mu.Unlock()

	a.Stats.SetWsClients(n)
}

func (a *Api) websocketWriter(ws *websocket.Conn, messages <-chan gldebug.Message) {
	ticker := time.NewTicker(statsInterval)
	defer func() {
		ticker.Stop()
		err := ws.Close()
		if err != nil {
			a.logger.Debug("could not close websocket", "err", err)
		}
	}()

	if err := a.writeEvent(ws, Event{Event: "stats", Data: a.Stats.Snapshot()}); err != nil {
		return
	}

	for {
		select {
		case m, ok := <-messages:
			if !ok {
				return
			}
			if err := a.writeEvent(ws, Event{Event: "gl-debug", Data: debugEvent(m)}); err != nil {
				return
			}
		case <-ticker.C:
			if err := a.writeEvent(ws, Event{Event: "stats", Data: a.Stats.Snapshot()}); err != nil {
				return
			}
		}
	}
}

type debugPayload struct {
	gldebug.Message
	SeverityName string `json:"severity_name"`
	SourceName   string `json:"source_name"`
	IsError      bool   `json:"is_error"`
}

func debugEvent(m gldebug.Message) debugPayload {
	return debugPayload{
		Message:      m,
		SeverityName: gldebug.SeverityName(m.Severity),
		SourceName:   gldebug.SourceName(m.Source),
		IsError:      m.IsError(),
	}
}

func (a *Api) writeEvent(ws *websocket.Conn, ev Event) error {
	packet, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	err = ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err != nil {
		a.logger.Warn("could not set write deadline", "err", err)
		return err
	}
	return ws.WriteMessage(websocket.TextMessage, packet)
}
