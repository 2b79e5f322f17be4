// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"cogentcore.org/svgfit/config"
	"cogentcore.org/svgfit/envelope"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const icon = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">
	<rect x="40" y="40" width="20" height="20"/>
</svg>`

const spinner = `<svg xmlns="http://www.w3.org/2000/svg" width="200" height="200">
	<rect x="90" y="90" width="20" height="20">
		<animateTransform attributeName="transform" type="translate" from="0 0" to="50 0" dur="1s"/>
	</rect>
</svg>`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestFitFile(t *testing.T) {
	dir := t.TempDir()
	rep, err := FitFile(context.Background(), config.Defaults(), writeFile(t, dir, "icon.svg", icon))
	require.NoError(t, err)
	assert.Equal(t, envelope.Rect{Width: 100, Height: 100}, rep.Original)
	assert.Equal(t, envelope.Rect{X: 40, Y: 40, Width: 20, Height: 20}, rep.Result.Viewport)
	assert.InDelta(t, 96, rep.Savings, 0.001)

	c := config.Defaults()
	c.Buffer = 10
	rep, err = FitFile(context.Background(), c, writeFile(t, dir, "spinner.svg", spinner))
	require.NoError(t, err)
	assert.Equal(t, envelope.Rect{Width: 200, Height: 200}, rep.Original)
	assert.Equal(t, envelope.Rect{X: 90, Y: 90, Width: 70, Height: 20}, rep.Result.Envelope)
	assert.Equal(t, envelope.Rect{X: 80, Y: 80, Width: 90, Height: 40}, rep.Result.Viewport)

	_, err = FitFile(context.Background(), c, filepath.Join(dir, "missing.svg"))
	assert.Error(t, err)
}

func TestFit(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.svg", icon)
	writeFile(t, dir, "b.svg", spinner)
	writeFile(t, dir, "notes.txt", "not svg")

	var buf bytes.Buffer
	require.NoError(t, Fit(context.Background(), config.Defaults(), []string{dir}, JSON, &buf))
	var reps []Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &reps))
	require.Len(t, reps, 2)
	assert.Equal(t, filepath.Join(dir, "a.svg"), reps[0].File)
	assert.Equal(t, "40.00 40.00 20.00 20.00", reps[0].Result.Viewport.ViewBoxString())

	buf.Reset()
	require.NoError(t, Fit(context.Background(), config.Defaults(), []string{dir}, Text, &buf))
	out := buf.String()
	assert.Contains(t, out, "a.svg")
	assert.Contains(t, out, "40.00 40.00 20.00 20.00")
	assert.Contains(t, out, "96.0%")
	assert.Contains(t, out, "1 animated")

	writeFile(t, dir, "bad.svg", "<html/>")
	buf.Reset()
	err := Fit(context.Background(), config.Defaults(), []string{dir}, YAML, &buf)
	assert.ErrorContains(t, err, "1 of 3 files failed")
	var yreps []Report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &yreps))
	assert.Len(t, yreps, 2)
}

func TestElements(t *testing.T) {
	dir := t.TempDir()
	fname := writeFile(t, dir, "elements.yaml", `
elements:
  - id: box
    bounds: [0, 0, 10, 10]
    transform: translate(5, 5)
  - id: ghost
    bounds: [0, 0, 500, 500]
    hidden: true
`)
	var buf bytes.Buffer
	require.NoError(t, Elements(context.Background(), config.Defaults(), fname, Text, &buf))
	out := buf.String()
	assert.Contains(t, out, "5.00 5.00 10.00 10.00")
	assert.Contains(t, out, "excluded: display:none")

	buf.Reset()
	require.NoError(t, Elements(context.Background(), config.Defaults(), fname, JSON, &buf))
	var res envelope.Result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &res))
	assert.Equal(t, envelope.Rect{X: 5, Y: 5, Width: 10, Height: 10}, res.Envelope)
	assert.Len(t, res.Elements, 2)
}

func TestFormat(t *testing.T) {
	var f Format
	require.NoError(t, f.Set("JSON"))
	assert.Equal(t, JSON, f)
	assert.Equal(t, "json", f.String())
	assert.Error(t, f.Set("xml"))
}

func TestServer(t *testing.T) {
	s := &Server{Config: config.Defaults()}
	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))

	body := `{"elements": [{"id": "a", "bounds": [0, 0, 10, 10]}, {"id": "b", "bounds": [20, 20, 10, 10]}]}`
	resp, err = http.Post(ts.URL+"/v1/envelope?buffer=5", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	var res envelope.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, envelope.Rect{Width: 30, Height: 30}, res.Envelope)
	assert.Equal(t, envelope.Rect{X: -5, Y: -5, Width: 40, Height: 40}, res.Viewport)

	resp, err = http.Post(ts.URL+"/v1/svg", "image/svg+xml", strings.NewReader(icon))
	require.NoError(t, err)
	var rep Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rep))
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, envelope.Rect{X: 40, Y: 40, Width: 20, Height: 20}, rep.Result.Viewport)
}

func TestServerErrors(t *testing.T) {
	c := config.Defaults()
	c.Server.MaxBody = 256
	ts := httptest.NewServer((&Server{Config: c}).Router())
	defer ts.Close()

	post := func(path, body string) int {
		req, err := http.NewRequest(http.MethodPost, ts.URL+path, strings.NewReader(body))
		require.NoError(t, err)
		req.Header.Set("X-Request-Id", "9f1c0d5e-8a4b-4c1e-9d2f-3b6a7c8d9e0f")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		var msg map[string]string
		if resp.StatusCode != http.StatusOK {
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&msg))
			assert.NotEmpty(t, msg["error"])
			assert.Equal(t, "9f1c0d5e-8a4b-4c1e-9d2f-3b6a7c8d9e0f", msg["request"])
		}
		return resp.StatusCode
	}
	assert.Equal(t, http.StatusBadRequest, post("/v1/envelope", `{"elements": 3}`))
	assert.Equal(t, http.StatusBadRequest, post("/v1/envelope?buffer=-1", `{}`))
	assert.Equal(t, http.StatusUnprocessableEntity, post("/v1/envelope", `{"elements": [{"id": "a", "bounds": [1, 2]}]}`))
	assert.Equal(t, http.StatusRequestEntityTooLarge, post("/v1/envelope", `{"elements": [{"id": "`+strings.Repeat("x", 300)+`"}]}`))
	cycle := `{"elements": [{"id": "a", "bounds": [0, 0, 1, 1], "chain": [{"use": {"ref": "s"}}, {"use": {"ref": "s"}}]}]}`
	assert.Equal(t, http.StatusUnprocessableEntity, post("/v1/envelope", cycle))
}

func TestServerLive(t *testing.T) {
	ts := httptest.NewServer((&Server{Config: config.Defaults()}).Router())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/v1/live?buffer=2"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(icon)))
	var rep Report
	require.NoError(t, conn.ReadJSON(&rep))
	assert.Equal(t, envelope.Rect{X: 38, Y: 38, Width: 24, Height: 24}, rep.Result.Viewport)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("<html/>")))
	var msg map[string]any
	require.NoError(t, conn.ReadJSON(&msg))
	assert.NotEmpty(t, msg["error"])

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(spinner)))
	rep = Report{}
	require.NoError(t, conn.ReadJSON(&rep))
	assert.Equal(t, envelope.Rect{X: 90, Y: 90, Width: 70, Height: 20}, rep.Result.Envelope)

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
}

// syncBuffer is a bytes.Buffer safe for concurrent use.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	fname := writeFile(t, dir, "icon.svg", icon)
	ctx, cancel := context.WithCancel(context.Background())
	var out syncBuffer
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, config.Defaults(), []string{fname}, Text, &out)
	}()
	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "40.00 40.00 20.00 20.00")
	}, 5*time.Second, 10*time.Millisecond)

	writeFile(t, dir, "icon.svg", strings.Replace(icon, `width="20"`, `width="50"`, 1))
	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "40.00 40.00 50.00 20.00")
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
