// seehuhn.de/go/polyscan - polygon scan conversion for software 3D rendering
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Spinssh serves the spinning octahedron demo over SSH. Each session gets
// its own converter and canvas sized to the client's terminal.
//
// Configuration via environment variables:
//
//	SPIN_HOST      listen address (default "::")
//	SPIN_PORT      listen port (default "2222")
//	SPIN_HOST_KEY  host key path (default ".ssh/spin_host_key")
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"seehuhn.de/go/polyscan/canvas"
	"seehuhn.de/go/polyscan/demo"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = ".ssh/spin_host_key"
)

func main() {
	host := getenv("SPIN_HOST", defaultHost)
	port := getenv("SPIN_PORT", defaultPort)
	hostKeyPath := getenv("SPIN_HOST_KEY", defaultHostKeyPath)

	s, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithMiddleware(
			demoMiddleware,
			activeterm.Middleware(),
			logging.Middleware(),
		),
	)
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	log.Printf("starting SSH server on %s:%s", host, port)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-done
	log.Println("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}

// demoMiddleware runs the demo for one SSH session.
func demoMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Connect with: ssh -t user@host")
			return
		}

		log.Printf("session start: user=%s term=%s size=%dx%d",
			sess.User(), pty.Term, pty.Window.Width, pty.Window.Height)

		tracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				tracker.update(win.Width, win.Height)
			}
		}()

		canvas.HideCursor(sess)
		defer canvas.ShowCursor(sess)

		opts := demo.Options{
			Size:  tracker.size,
			Input: sess,
		}
		if err := demo.Run(sess.Context(), sess, opts); err != nil {
			log.Printf("demo error for %s: %v", sess.User(), err)
		}

		log.Printf("session end: user=%s", sess.User())
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu   sync.RWMutex
	cols int
	rows int
}

func newSizeTracker(cols, rows int) *sizeTracker {
	return &sizeTracker{cols: cols, rows: rows}
}

func (t *sizeTracker) update(cols, rows int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cols = cols
	t.rows = rows
}

func (t *sizeTracker) size() (int, int, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cols, t.rows, nil
}

// getenv returns the value of the environment variable key, or fallback
// if it is unset or empty.
func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
