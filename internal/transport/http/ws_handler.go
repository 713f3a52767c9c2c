package http

import (
	"encoding/json"
	"log"
	"net/http"

	"ielts-scoring-service/internal/app"
	"github.com/gorilla/websocket"
)

// WSHandler exposes the scoring-form action surface over a websocket: a thin
// adapter between client messages and the pure SheetService use cases.
type WSHandler struct {
	service  *app.SheetService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.SheetService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type fieldPayload struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

type pastePayload struct {
	Text string `json:"text"`
}

type pasteResult struct {
	Applied int `json:"applied"`
}

type exportedPayload struct {
	Document string `json:"document"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and wires them into the sheet
// use cases. A connection drives exactly one sheet; the sheet outlives the
// connection unless the client closes it explicitly.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	sheetID := r.URL.Query().Get("sheetId")
	sectionID := r.URL.Query().Get("sectionId")
	if sheetID == "" || sectionID == "" {
		http.Error(w, "missing sheetId or sectionId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	opened, err := h.service.Open(r.Context(), sheetID, sectionID)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}

	updates, cancel, err := h.service.Subscribe(r.Context(), sheetID)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	defer cancel()

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	// Single writer goroutine; everything else funnels through send.
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	go func() {
		defer close(updatesDone)
		for {
			select {
			case update, ok := <-updates:
				if !ok {
					return
				}
				select {
				case send <- outboundMessage[any]{Type: "sheet", Payload: update}:
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	send <- outboundMessage[any]{Type: "opened", Payload: opened}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		if h.dispatch(r, sheetID, inbound, send) {
			break
		}
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
}

// dispatch maps one inbound action onto the service; returns true when the
// connection should stop reading.
func (h *WSHandler) dispatch(r *http.Request, sheetID string, inbound inboundMessage, send chan outboundMessage[any]) bool {
	ctx := r.Context()
	switch inbound.Type {
	case "setAnswer", "setKey":
		var payload fieldPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid field payload"}}
			return false
		}
		var err error
		if inbound.Type == "setAnswer" {
			_, err = h.service.SetAnswer(ctx, sheetID, payload.Number, payload.Text)
		} else {
			_, err = h.service.SetKey(ctx, sheetID, payload.Number, payload.Text)
		}
		if err != nil {
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
		}
	case "clearAnswers":
		if _, err := h.service.ClearAnswers(ctx, sheetID); err != nil {
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
		}
	case "clearKeys":
		if _, err := h.service.ClearKeys(ctx, sheetID); err != nil {
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
		}
	case "pasteKeys":
		var payload pastePayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid paste payload"}}
			return false
		}
		_, applied, err := h.service.PasteKeys(ctx, sheetID, payload.Text)
		if err != nil {
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
			return false
		}
		send <- outboundMessage[any]{Type: "pasteResult", Payload: pasteResult{Applied: applied}}
	case "submit":
		result, err := h.service.Submit(ctx, sheetID)
		if err != nil {
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
			return false
		}
		send <- outboundMessage[any]{Type: "result", Payload: result}
	case "export":
		doc, err := h.service.Export(ctx, sheetID)
		if err != nil {
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
			return false
		}
		send <- outboundMessage[any]{Type: "exported", Payload: exportedPayload{Document: doc}}
	case "close":
		h.service.Close(ctx, sheetID)
		return true
	default:
		send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
	}
	return false
}
