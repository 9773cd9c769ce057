package integrationtests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"peer-bidding/internal/eventbus"
	"peer-bidding/internal/overlay"
	"peer-bidding/internal/server"
	"peer-bidding/internal/session"

	"github.com/gin-gonic/gin"
)

const (
	waitFor = 3 * time.Second
	tick    = 10 * time.Millisecond
)

// Node is one running peer with its HTTP surface
type Node struct {
	ID      string
	Router  *gin.Engine
	History *eventbus.History
}

// StartNode runs a session over net and serves it through the application router.
// swarm is mounted on /swarm when not nil.
func StartNode(t *testing.T, net overlay.Network, swarm http.Handler) *Node {
	t.Helper()
	gin.SetMode(gin.TestMode)

	bus := eventbus.New()
	history := eventbus.NewHistory(bus, 200)
	sess := session.New(net, bus, "")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = sess.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		_ = sess.Close()
	})

	return &Node{
		ID:      net.LocalID(),
		Router:  server.SetupRouter(sess, history, bus, swarm),
		History: history,
	}
}

// StartHubNode runs a peer on an in-memory overlay
func StartHubNode(t *testing.T, hub *overlay.Hub, id string) *Node {
	t.Helper()
	return StartNode(t, hub.Node(id), nil)
}

// ExecuteRequestAndParse executes an HTTP request on the given router and parses the response
func ExecuteRequestAndParse(t *testing.T, router http.Handler, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}

	return resp, w
}

// HasMessage reports whether node has received a chat line containing text
func (n *Node) HasMessage(contains string) bool {
	for _, msg := range n.History.Messages() {
		if strings.Contains(msg.Message, contains) {
			return true
		}
	}
	return false
}
