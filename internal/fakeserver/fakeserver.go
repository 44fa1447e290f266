// Package fakeserver runs an in-process stand-in for the model server so the
// client and commands can be tested without one.
package fakeserver

import (
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/papercomputeco/kazama/pkg/llm"
)

// ReplyContent is the assistant message content of the default chat reply.
const ReplyContent = "The moon reflects **sunlight** from its grey surface."

// Request is a request received by the server.
type Request struct {
	Method      string
	Path        string
	ContentType string
	Body        []byte
}

// JSON decodes the request body into a generic map.
func (r Request) JSON() (map[string]any, error) {
	var m map[string]any
	if err := json.Unmarshal(r.Body, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// Reply is a canned response for one route.
type Reply struct {
	Status int
	Body   string
	Delay  time.Duration
}

// Server is a running fake model server.
type Server struct {
	app      *fiber.App
	listener net.Listener
	done     chan struct{}

	mu       sync.Mutex
	requests []Request
	replies  map[string]Reply
}

// Start listens on a random loopback port and serves until Close.
func Start() (*Server, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("listen: %w", err)
	}

	s := &Server{
		listener: listener,
		done:     make(chan struct{}),
		replies:  make(map[string]Reply),
	}

	s.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	s.app.Use(s.handle)

	listening := make(chan struct{})
	s.app.Hooks().OnListen(func(fiber.ListenData) error {
		close(listening)
		return nil
	})

	go func() {
		defer close(s.done)
		_ = s.app.Listener(listener)
	}()

	select {
	case <-listening:
	case <-s.done:
		return nil, fmt.Errorf("fake server exited before listening")
	}
	return s, nil
}

// URL is the base URL to point a client at.
func (s *Server) URL() string {
	return "http://" + s.listener.Addr().String()
}

// Close stops the server, giving in-flight handlers a second to finish, and
// returns once the serving goroutine has exited.
func (s *Server) Close() error {
	err := s.app.ShutdownWithTimeout(time.Second)
	// Shutdown only closes listeners the server has registered, so a Close
	// racing Start could otherwise leave Serve running.
	_ = s.listener.Close()
	<-s.done
	return err
}

// SetReply overrides the response for method and path.
func (s *Server) SetReply(method, path string, reply Reply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[method+" "+path] = reply
}

// Requests returns every request received so far, oldest first.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Last returns the most recent request.
func (s *Server) Last() (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}, false
	}
	return s.requests[len(s.requests)-1], true
}

func (s *Server) handle(c *fiber.Ctx) error {
	req := Request{
		Method:      c.Method(),
		Path:        c.Path(),
		ContentType: c.Get(fiber.HeaderContentType),
		Body:        append([]byte(nil), c.Body()...),
	}

	s.mu.Lock()
	s.requests = append(s.requests, req)
	reply, ok := s.replies[req.Method+" "+req.Path]
	s.mu.Unlock()

	if ok {
		if reply.Delay > 0 {
			time.Sleep(reply.Delay)
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Status(reply.Status).SendString(reply.Body)
	}

	switch req.Method + " " + req.Path {
	case "POST /api/chat":
		var chat llm.ChatRequest
		if err := json.Unmarshal(req.Body, &chat); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: "invalid request body"})
		}
		return c.JSON(map[string]any{
			"model":      chat.Model,
			"created_at": "2024-05-01T10:00:00Z",
			"message":    llm.Message{Role: "assistant", Content: ReplyContent},
			"done":       true,
			"eval_count": 12,
		})
	case "POST /api/pull", "POST /api/push":
		return c.JSON(map[string]any{"status": "success"})
	case "POST /api/embeddings":
		var emb llm.EmbeddingsRequest
		if err := json.Unmarshal(req.Body, &emb); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: "invalid request body"})
		}
		return c.JSON(map[string]any{
			"embedding": []float64{float64(len(emb.Prompt)), 0.5, -0.25},
		})
	case "GET /api/tags":
		return c.JSON(map[string]any{
			"models": []map[string]any{
				{"name": "gemma:2b", "size": 1678447520, "modified_at": "2024-05-01T10:00:00Z", "digest": "b50d6c999e59"},
				{"name": "nomic-embed-text:latest", "size": 274302450, "modified_at": "2024-04-20T08:30:00Z", "digest": "0a109f422b47"},
			},
		})
	case "GET /api/ps":
		return c.JSON(map[string]any{
			"models": []map[string]any{
				{"name": "gemma:2b", "size": 2340000000, "expires_at": "2024-05-01T10:05:00Z"},
			},
		})
	}

	return c.Status(fiber.StatusNotFound).JSON(llm.ErrorResponse{Error: "not found"})
}
