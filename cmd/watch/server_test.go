package watch

import (
	"bufio"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroker_PublishAndSubscribe(t *testing.T) {
	b := newBroker()
	ch := b.subscribe()
	defer b.unsubscribe(ch)

	b.publish(buildEvent{ID: 1, Text: ".a {}\n"})

	select {
	case got := <-ch:
		assert.Equal(t, int64(1), got.ID)
		assert.Equal(t, ".a {}\n", got.Text)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
	}
}

func TestBroker_NewSubscriberReceivesLatest(t *testing.T) {
	b := newBroker()
	b.publish(buildEvent{ID: 1, Text: "first"})
	b.publish(buildEvent{ID: 2, Text: "second"})

	ch := b.subscribe()
	defer b.unsubscribe(ch)

	select {
	case got := <-ch:
		assert.Equal(t, "second", got.Text)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for latest build")
	}
}

func TestBroker_FailedBuildKeepsLastText(t *testing.T) {
	b := newBroker()
	b.publish(buildEvent{ID: 1, Text: ".ok {}\n"})
	b.publish(buildEvent{ID: 2, Error: "missing import"})

	latest, text, built := b.snapshot()

	require.NotNil(t, latest)
	assert.Equal(t, int64(2), latest.ID)
	assert.Equal(t, ".ok {}\n", text)
	assert.True(t, built)
}

func TestHandleIndex_BeforeFirstBuild(t *testing.T) {
	w := httptest.NewRecorder()

	handleIndex(newBroker())(w, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHandleIndex_ServesLatestBundle(t *testing.T) {
	b := newBroker()
	b.publish(buildEvent{ID: 1, Text: ".a {}\n"})
	w := httptest.NewRecorder()

	handleIndex(b)(w, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Equal(t, ".a {}\n", w.Body.String())
}

func TestHandleIndex_UnknownPath(t *testing.T) {
	b := newBroker()
	b.publish(buildEvent{ID: 1, Text: ".a {}\n"})
	w := httptest.NewRecorder()

	handleIndex(b)(w, httptest.NewRequest("GET", "/favicon.ico", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleStatus_OmitsText(t *testing.T) {
	b := newBroker()
	b.publish(buildEvent{ID: 3, Text: ".a {}\n", Files: []string{"/p/site.less"}})
	w := httptest.NewRecorder()

	handleStatus(b)(w, httptest.NewRequest("GET", "/status", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var got buildEvent
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, int64(3), got.ID)
	assert.Empty(t, got.Text)
	assert.Equal(t, []string{"/p/site.less"}, got.Files)
}

func TestHandleSSE_StreamsBuildEvent(t *testing.T) {
	b := newBroker()
	b.publish(buildEvent{ID: 7, Text: ".a {\n  color: red;\n}\n"})

	server := httptest.NewServer(handleSSE(b))
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := readEvent(t, resp.Body)
	require.Len(t, lines, 3)
	assert.Equal(t, "id: 7", lines[0])
	assert.Equal(t, "event: build", lines[1])
	require.True(t, strings.HasPrefix(lines[2], "data: "))

	var got buildEvent
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(lines[2], "data: ")), &got))
	assert.Equal(t, ".a {\n  color: red;\n}\n", got.Text)
}

func readEvent(t *testing.T, r io.Reader) []string {
	t.Helper()
	scanner := bufio.NewScanner(r)
	var lines []string
	for scanner.Scan() {
		if scanner.Text() == "" {
			return lines
		}
		lines = append(lines, scanner.Text())
	}
	require.NoError(t, scanner.Err())
	return lines
}
