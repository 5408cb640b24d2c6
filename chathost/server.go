// Copyright (c) 2026 Kyradjis
// released under the MIT license

package chathost

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/okzk/sdnotify"

	"github.com/kyradjis/bluelib/datastore"
	"github.com/kyradjis/bluelib/entitystate"
	"github.com/kyradjis/bluelib/logger"
	"github.com/kyradjis/bluelib/markdown"
	"github.com/kyradjis/bluelib/utils"
	"github.com/kyradjis/bluelib/variant"
)

// Server is a small websocket chat room: every message a client sends
// runs through the markdown pipeline and the resulting styled tree is
// broadcast to the room as text-component JSON.
type Server struct {
	config   utils.ConfigStore[Config]
	logger   *logger.Manager
	pipeline *markdown.Pipeline
	variants *variant.Manager
	watcher  *variant.Watcher
	db       datastore.Datastore
	states   *entitystate.Store

	clients struct {
		sync.Mutex
		byNick map[string]*Client
	}

	httpServer   *http.Server
	exitSignal   chan os.Signal
	rehashSignal chan os.Signal
}

// envelope is the frame broadcast to the room.
type envelope struct {
	From    string          `json:"from,omitempty"`
	Message json.RawMessage `json:"message,omitempty"`
	Notice  string          `json:"notice,omitempty"`
}

func NewServer(config *Config, lm *logger.Manager) (*Server, error) {
	server := &Server{
		logger:       lm,
		pipeline:     markdown.NewPipeline(lm),
		exitSignal:   make(chan os.Signal, 1),
		rehashSignal: make(chan os.Signal, 1),
	}
	server.clients.byNick = make(map[string]*Client)
	server.config.Set(config)
	config.ApplyMarkdown(server.pipeline)

	if len(config.Variants.Sources) > 0 {
		variants, err := variant.NewManager(config.Variants.Sources, lm)
		if err != nil {
			return nil, err
		}
		server.variants = variants
		if config.Variants.Watch {
			watcher, err := variant.Watch(variants)
			if err != nil {
				return nil, err
			}
			server.watcher = watcher
		}
	}

	if config.Datastore.Path != "" {
		db, err := datastore.Open(config.Datastore.Path, lm)
		if err != nil {
			return nil, err
		}
		server.db = db
		states, err := entitystate.NewStore(db, lm)
		if err != nil {
			db.Close()
			return nil, err
		}
		server.states = states
	}

	signal.Notify(server.exitSignal, syscall.SIGINT, syscall.SIGTERM)
	signal.Notify(server.rehashSignal, syscall.SIGHUP)

	return server, nil
}

// Run serves the room until an exit signal arrives. SIGHUP rehashes.
func (server *Server) Run() {
	config := server.config.Get()

	mux := http.NewServeMux()
	mux.HandleFunc("/chat", server.handleUpgrade)
	server.httpServer = &http.Server{Addr: config.Host.Listen, Handler: mux}

	go func() {
		var err error
		if config.Host.TLS.Cert != "" {
			err = server.httpServer.ListenAndServeTLS(config.Host.TLS.Cert, config.Host.TLS.Key)
		} else {
			err = server.httpServer.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			server.logger.Error("host", fmt.Sprintf("Listener failed: %s", err.Error()))
			server.exitSignal <- syscall.SIGTERM
		}
	}()

	server.logger.Info("host", fmt.Sprintf("%s listening on %s", config.Host.Name, config.Host.Listen))
	sdnotify.Ready()

	for {
		select {
		case <-server.exitSignal:
			sdnotify.Stopping()
			server.Shutdown()
			return
		case <-server.rehashSignal:
			server.logger.Info("host", "Rehashing due to SIGHUP")
			go func() {
				if err := server.rehash(); err != nil {
					server.logger.Error("host", fmt.Sprintf("Failed to rehash: %s", err.Error()))
				}
			}()
		}
	}
}

// rehash reloads the configuration file and applies it to the logger,
// the pipeline, and the variant manager; clients stay connected.
func (server *Server) rehash() error {
	config, err := LoadConfig(server.config.Get().Filename)
	if err != nil {
		return err
	}
	if err := server.logger.ApplyConfig(config.Logging); err != nil {
		return err
	}
	config.ApplyMarkdown(server.pipeline)
	if server.variants != nil {
		if err := server.variants.Reload(); err != nil {
			server.logger.Warning("bluelib.variant", fmt.Sprintf("Variant reload failed: %s", err.Error()))
		}
	}
	server.config.Set(config)
	server.logger.Info("host", "Rehash complete")
	return nil
}

func (server *Server) Shutdown() {
	server.logger.Info("host", "Shutting down")
	if server.watcher != nil {
		server.watcher.Close()
	}
	if server.states != nil {
		if err := server.states.Persist(); err != nil {
			server.logger.Error("host", fmt.Sprintf("Could not persist entity state: %s", err.Error()))
		}
	}
	if server.db != nil {
		server.db.Close()
	}
	if server.httpServer != nil {
		server.httpServer.Close()
	}
	server.clients.Lock()
	for _, client := range server.clients.byNick {
		client.Close()
	}
	server.clients.Unlock()
}

func (server *Server) registerClient(client *Client) error {
	server.clients.Lock()
	defer server.clients.Unlock()
	if _, present := server.clients.byNick[client.nickCasefolded]; present {
		return fmt.Errorf("nickname [%s] is already in use", client.nick)
	}
	server.clients.byNick[client.nickCasefolded] = client
	return nil
}

func (server *Server) removeClient(client *Client) {
	server.clients.Lock()
	defer server.clients.Unlock()
	if server.clients.byNick[client.nickCasefolded] == client {
		delete(server.clients.byNick, client.nickCasefolded)
	}
}

// broadcast formats a chat line and fans it out to the whole room.
func (server *Server) broadcast(from *Client, line string) {
	styled := server.pipeline.FormatString(line)
	component, err := json.Marshal(styled)
	if err != nil {
		server.logger.Error("host", fmt.Sprintf("Could not marshal component: %s", err.Error()))
		return
	}
	frame, err := json.Marshal(envelope{From: from.nick, Message: component})
	if err != nil {
		return
	}
	server.clients.Lock()
	defer server.clients.Unlock()
	for _, client := range server.clients.byNick {
		client.Send(frame)
	}
}

func (server *Server) notice(client *Client, text string) {
	frame, err := json.Marshal(envelope{Notice: text})
	if err != nil {
		return
	}
	client.Send(frame)
}
