/*
Copyright © 2026 the convect authors.
This file is part of convect.

convect is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

convect is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with convect.  If not, see <http://www.gnu.org/licenses/>.
*/

package convect

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Snapshot is one monitoring message: the step summary plus, optionally,
// the per-cell convecting mask in row-major order.
type Snapshot struct {
	Summary
	Mask []bool `json:"mask,omitempty"`
}

// StatusServer pushes simulation snapshots to websocket clients, so a run
// can be watched without touching the model loop. Slow or dead clients
// are dropped rather than allowed to stall the simulation.
type StatusServer struct {
	log      logrus.FieldLogger
	upgrader websocket.Upgrader

	mx      sync.Mutex
	clients map[*websocket.Conn]bool
}

// NewStatusServer returns a server ready to accept websocket upgrades.
func NewStatusServer(log logrus.FieldLogger) *StatusServer {
	return &StatusServer{
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 16384,
		},
		clients: make(map[*websocket.Conn]bool),
	}
}

// ServeHTTP upgrades the request to a websocket and registers the client
// for snapshot broadcasts. The connection is held open, discarding
// incoming messages, until the client goes away.
func (srv *StatusServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := srv.upgrader.Upgrade(w, r, nil)
	if err != nil {
		srv.log.WithError(err).Error("websocket upgrade")
		return
	}
	srv.mx.Lock()
	srv.clients[conn] = true
	srv.mx.Unlock()
	srv.log.WithField("remote", conn.RemoteAddr()).Info("monitor attached")

	go func() {
		defer srv.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// NumClients returns the number of attached monitoring clients.
func (srv *StatusServer) NumClients() int {
	srv.mx.Lock()
	defer srv.mx.Unlock()
	return len(srv.clients)
}

// Broadcast sends snap to every attached client.
func (srv *StatusServer) Broadcast(snap Snapshot) {
	srv.mx.Lock()
	conns := make([]*websocket.Conn, 0, len(srv.clients))
	for conn := range srv.clients {
		conns = append(conns, conn)
	}
	srv.mx.Unlock()
	for _, conn := range conns {
		if err := conn.WriteJSON(snap); err != nil {
			srv.log.WithError(err).Warn("dropping monitor client")
			srv.drop(conn)
		}
	}
}

func (srv *StatusServer) drop(conn *websocket.Conn) {
	srv.mx.Lock()
	delete(srv.clients, conn)
	srv.mx.Unlock()
	conn.Close()
}

// Publish returns a step function that broadcasts a snapshot after each
// iteration. If includeMask is true the snapshot carries the full
// convecting mask; otherwise only the summary statistics go out.
func Publish(srv *StatusServer, includeMask bool) Manipulator {
	return func(s *Simulation) error {
		if srv.NumClients() == 0 {
			return nil
		}
		snap := Snapshot{Summary: s.Summarize()}
		if includeMask {
			snap.Mask = s.Domain.ConvectingMask()
		}
		srv.Broadcast(snap)
		return nil
	}
}
