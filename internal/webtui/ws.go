package webtui

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/creack/pty"
	"github.com/gorilla/websocket"

	"hackevents/internal/log"
)

type wsMsg struct {
	Type string `json:"type"`
	Cols int    `json:"cols"`
	Rows int    `json:"rows"`
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  32 * 1024,
	WriteBufferSize: 32 * 1024,
	CheckOrigin:     sameOrigin,
}

// sameOrigin accepts requests without an Origin header and those whose Origin host matches
// the request host.
func sameOrigin(r *http.Request) bool {
	origin := strings.TrimSpace(r.Header.Get("Origin"))
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, strings.TrimSpace(r.Host))
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		log.Error("webtui upgrade", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	ptmx, cmd, cleanup, err := s.startPTYSession()
	if err != nil {
		log.Error("webtui start session", err)
		_ = conn.WriteMessage(websocket.TextMessage, []byte("failed to start session: "+err.Error()))
		return
	}
	defer cleanup()
	log.Info("webtui session started", "remote", r.RemoteAddr, "pid", cmd.Process.Pid)

	var wg sync.WaitGroup
	errCh := make(chan error, 2)

	wg.Add(2)
	go func() {
		defer wg.Done()
		errCh <- pumpPTYToWS(ctx, ptmx, conn)
	}()
	go func() {
		defer wg.Done()
		errCh <- pumpWSToPTY(ctx, conn, ptmx)
	}()

	select {
	case <-ctx.Done():
	case <-errCh:
	}
	cancel()

	// Unblocks both pumps: the PTY read fails once the child is gone, the socket read once
	// the connection closes.
	_ = cmd.Process.Kill()
	_ = conn.Close()

	wg.Wait()
	log.Info("webtui session ended", "remote", r.RemoteAddr)
}

func (s *Server) startPTYSession() (*os.File, *exec.Cmd, func(), error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, nil, nil, err
	}

	cmd := exec.Command(exe, s.tuiArgs()...)
	cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"COLORTERM=truecolor",
	)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Cols: 120, Rows: 40})
	if err != nil {
		return nil, nil, nil, err
	}

	cleanup := func() {
		_ = ptmx.Close()
		_ = cmd.Process.Kill()
		_, _ = cmd.Process.Wait()
	}
	return ptmx, cmd, cleanup, nil
}

func pumpPTYToWS(ctx context.Context, ptmx io.Reader, conn *websocket.Conn) error {
	buf := make([]byte, 32*1024)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		n, err := ptmx.Read(buf)
		if n > 0 {
			_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if werr := conn.WriteMessage(websocket.BinaryMessage, buf[:n]); werr != nil {
				return werr
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

func pumpWSToPTY(ctx context.Context, conn *websocket.Conn, ptmx *os.File) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		mt, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		// Control messages are JSON text. Keystrokes are plain text or binary frames.
		if m, ok := parseControl(mt, data); ok {
			if m.Type == "resize" && m.Cols > 0 && m.Rows > 0 {
				_ = pty.Setsize(ptmx, &pty.Winsize{Cols: uint16(m.Cols), Rows: uint16(m.Rows)})
			}
			continue
		}
		if len(data) == 0 {
			continue
		}
		if _, err := ptmx.Write(data); err != nil {
			return err
		}
	}
}

// parseControl decodes a JSON control frame. Any other frame is terminal input.
func parseControl(mt int, data []byte) (wsMsg, bool) {
	if mt != websocket.TextMessage || len(data) == 0 || data[0] != '{' {
		return wsMsg{}, false
	}
	var m wsMsg
	if err := json.Unmarshal(data, &m); err != nil {
		return wsMsg{}, false
	}
	m.Type = strings.ToLower(strings.TrimSpace(m.Type))
	return m, m.Type != ""
}
