package watch

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
)

// broker manages SSE client connections and broadcasts build events.
type broker struct {
	mu       sync.Mutex
	clients  map[chan buildEvent]struct{}
	latest   *buildEvent
	lastText string
	built    bool
}

func newBroker() *broker {
	return &broker{
		clients: make(map[chan buildEvent]struct{}),
	}
}

func (b *broker) subscribe() chan buildEvent {
	ch := make(chan buildEvent, 1)
	b.mu.Lock()
	b.clients[ch] = struct{}{}
	if b.latest != nil {
		ch <- *b.latest
	}
	b.mu.Unlock()
	return ch
}

func (b *broker) unsubscribe(ch chan buildEvent) {
	b.mu.Lock()
	delete(b.clients, ch)
	close(ch)
	b.mu.Unlock()
}

// publish stores event as the latest build. A failed build keeps serving the
// last successful bundle text.
func (b *broker) publish(event buildEvent) {
	b.mu.Lock()
	b.latest = &event
	if event.ok() {
		b.lastText = event.Text
		b.built = true
	}
	for ch := range b.clients {
		select {
		case ch <- event:
		default:
		}
	}
	b.mu.Unlock()
}

func (b *broker) snapshot() (latest *buildEvent, text string, built bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.latest != nil {
		copied := *b.latest
		latest = &copied
	}
	return latest, b.lastText, b.built
}

func newServer(b *broker) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc(routeIndex, handleIndex(b))
	mux.HandleFunc(routeStatus, handleStatus(b))
	mux.HandleFunc(routeEvents, handleSSE(b))

	return &http.Server{Handler: mux}
}

func handleIndex(b *broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != routeIndex {
			http.NotFound(w, r)
			return
		}
		_, text, built := b.snapshot()
		if !built {
			http.Error(w, "no bundle built yet", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		if _, err := w.Write([]byte(text)); err != nil {
			http.Error(w, "failed to write bundle", http.StatusInternalServerError)
		}
	}
}

func handleStatus(b *broker) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		latest, _, _ := b.snapshot()
		if latest == nil {
			http.Error(w, "no bundle built yet", http.StatusServiceUnavailable)
			return
		}
		status := *latest
		status.Text = ""
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(status); err != nil {
			http.Error(w, "failed to encode status", http.StatusInternalServerError)
		}
	}
}

func handleSSE(b *broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		ch := b.subscribe()
		defer b.unsubscribe(ch)

		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-ch:
				if !ok {
					return
				}
				payload, err := json.Marshal(event)
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "id: %d\n", event.ID)
				fmt.Fprintf(w, "event: %s\n", sseEventBuild)
				fmt.Fprintf(w, "data: %s\n\n", payload)
				flusher.Flush()
			}
		}
	}
}
