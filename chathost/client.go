// Copyright (c) 2026 Kyradjis
// released under the MIT license

package chathost

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/crypto/bcrypt"

	"github.com/kyradjis/bluelib/utils"
)

const (
	// chat lines longer than this are rejected by closing the session
	maxFrameSize = 4096

	writeTimeout = 10 * time.Second
	sendQueueLen = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	// the room has no cookie-based credentials, so any Origin is fine
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client is one websocket session in the room.
type Client struct {
	server         *Server
	conn           *websocket.Conn
	nick           string
	nickCasefolded string
	operator       bool

	send chan []byte
	done chan struct{}
}

// handleUpgrade accepts a websocket session; the nick comes from the
// ?nick= query parameter.
func (server *Server) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	nick := r.URL.Query().Get("nick")
	nickCasefolded, err := utils.CasefoldName(nick)
	if err != nil {
		http.Error(w, "invalid nickname", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		server.logger.Debug("host", fmt.Sprintf("Upgrade failed: %s", err.Error()))
		return
	}

	client := &Client{
		server:         server,
		conn:           conn,
		nick:           nick,
		nickCasefolded: nickCasefolded,
		send:           make(chan []byte, sendQueueLen),
		done:           make(chan struct{}),
	}
	if err := server.registerClient(client); err != nil {
		client.writeNow(envelope{Notice: err.Error()})
		conn.Close()
		return
	}

	server.logger.Info("host", fmt.Sprintf("Client [%s] joined", nick))
	go client.writeLoop()
	client.readLoop()
}

func (client *Client) readLoop() {
	defer func() {
		client.server.removeClient(client)
		client.Close()
		client.server.logger.Info("host", fmt.Sprintf("Client [%s] left", client.nick))
	}()

	client.conn.SetReadLimit(maxFrameSize)
	for {
		ty, message, err := client.conn.ReadMessage()
		if err != nil {
			return
		}
		if ty != websocket.TextMessage {
			continue
		}
		line := strings.TrimSpace(string(message))
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "/") {
			client.handleCommand(line)
		} else {
			client.server.broadcast(client, line)
		}
	}
}

func (client *Client) writeLoop() {
	for {
		select {
		case frame := <-client.send:
			client.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := client.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				client.conn.Close()
				return
			}
		case <-client.done:
			client.conn.Close()
			return
		}
	}
}

// Send queues a frame; a client that cannot keep up is dropped.
func (client *Client) Send(frame []byte) {
	select {
	case client.send <- frame:
	default:
		client.Close()
	}
}

// writeNow writes synchronously, for use before the write loop starts.
func (client *Client) writeNow(env envelope) {
	frame, err := json.Marshal(env)
	if err != nil {
		return
	}
	client.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	client.conn.WriteMessage(websocket.TextMessage, frame)
}

func (client *Client) Close() {
	select {
	case <-client.done:
	default:
		close(client.done)
	}
}

func (client *Client) handleCommand(line string) {
	server := client.server
	fields := strings.Fields(line)
	switch fields[0] {
	case "/oper":
		if len(fields) != 3 {
			server.notice(client, "usage: /oper <name> <password>")
			return
		}
		operator := server.config.Get().Host.Operator
		if operator == nil || operator.Name != fields[1] ||
			bcrypt.CompareHashAndPassword([]byte(operator.PasswordHash), []byte(fields[2])) != nil {
			server.notice(client, "bad operator credentials")
			server.logger.Warning("host", fmt.Sprintf("Failed oper attempt by [%s]", client.nick))
			return
		}
		client.operator = true
		server.notice(client, "you are now an operator")

	case "/rehash":
		if !client.operator {
			server.notice(client, "operators only")
			return
		}
		if err := server.rehash(); err != nil {
			server.notice(client, fmt.Sprintf("rehash failed: %s", err.Error()))
		} else {
			server.notice(client, "rehash complete")
		}

	case "/variants":
		if server.variants == nil {
			server.notice(client, "no variant sources configured")
			return
		}
		if len(fields) != 2 {
			server.notice(client, "usage: /variants <entity>")
			return
		}
		entity, err := utils.CasefoldEntityType(fields[1])
		if err != nil {
			server.notice(client, "invalid entity type")
			return
		}
		variants := server.variants.Variants(entity)
		if len(variants) == 0 {
			server.notice(client, fmt.Sprintf("no variants for [%s]", entity))
			return
		}
		names := make([]string, len(variants))
		for i, v := range variants {
			names[i] = v.Name
		}
		server.notice(client, fmt.Sprintf("%s: %s", entity, strings.Join(names, ", ")))

	case "/tame":
		if server.states == nil {
			server.notice(client, "no datastore configured")
			return
		}
		if len(fields) != 2 {
			server.notice(client, "usage: /tame <entity-id>")
			return
		}
		server.states.SetTamed(fields[1], true, client.nickCasefolded)
		server.notice(client, fmt.Sprintf("[%s] is now tamed by you", fields[1]))

	case "/state":
		if server.states == nil {
			server.notice(client, "no datastore configured")
			return
		}
		if len(fields) != 2 {
			server.notice(client, "usage: /state <entity-id>")
			return
		}
		state := server.states.Get(fields[1])
		blob, err := json.Marshal(state)
		if err != nil {
			return
		}
		server.notice(client, string(blob))

	default:
		server.notice(client, fmt.Sprintf("unknown command %s", fields[0]))
	}
}
