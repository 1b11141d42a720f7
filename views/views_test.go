package views

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"speedsense/models"
)

// ─── CSV ────────────────────────────────────────────────────────────────

func TestCSVWriter_RecordedSchema(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewCSVWriter(&buf, 0, SchemaRecorded)
	require.NoError(t, err)

	s := models.NewSensorSample(models.Vector3{X: 3, Y: 4}, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	w.WriteRecord(&s)
	require.NoError(t, w.Close())
	require.EqualValues(t, 1, w.Rows())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Equal(t, []string{
		"timestamp,x,y,z,magnitude",
		"2024-05-01T12:00:00Z,3.000000,4.000000,0.000000,5.000000",
	}, lines)
}

func TestCSVWriter_StoredSchemaMatchesModel(t *testing.T) {
	require.Equal(t, models.StoredSample{}.CSVHeader(), SchemaColumns[SchemaStored])
	require.Equal(t, models.SensorSample{}.CSVHeader(), SchemaColumns[SchemaRecorded])
}

func TestCSVWriter_UnknownSchema(t *testing.T) {
	_, err := NewCSVWriter(&bytes.Buffer{}, 0, Schema(99))
	require.Error(t, err)
}

func TestCSVWriter_ConcurrentRows(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewCSVWriter(&buf, 128, SchemaStored)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				w.WriteRecord(&models.StoredSample{ID: int64(g*100 + i)})
			}
		}(g)
	}
	wg.Wait()
	require.NoError(t, w.Flush())
	require.EqualValues(t, 400, w.Rows())
	require.Len(t, strings.Split(strings.TrimSpace(buf.String()), "\n"), 401)
}

func TestCreateCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gyroscope.csv")
	w, err := CreateCSVFile(path, 0, SchemaRecorded)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "timestamp,x,y,z,magnitude\n", string(raw))

	_, err = CreateCSVFile(filepath.Join(t.TempDir(), "missing", "x.csv"), 0, SchemaRecorded)
	require.Error(t, err)
}

func TestSchemaString(t *testing.T) {
	require.Equal(t, "stored", SchemaStored.String())
	require.Equal(t, "recorded", SchemaRecorded.String())
}

// ─── LiveHub ────────────────────────────────────────────────────────────

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestLiveHub_PushesFrames(t *testing.T) {
	hub := NewLiveHub()
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	conn := dial(t, srv)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	window := []models.DisplayPoint{{X: 1, Magnitude: 1}, {X: 2, Magnitude: 2}}
	hub.Refresh(models.Accelerometer, window)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var frame LiveFrame
	require.NoError(t, json.Unmarshal(raw, &frame))
	require.Equal(t, "accelerometer", frame.SensorType)
	require.Equal(t, window, frame.Points)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
}

func TestLiveHub_SlowClientDropsFrames(t *testing.T) {
	hub := NewLiveHub()
	c := &liveClient{send: make(chan []byte, clientSendBuffer)}
	hub.clients[c] = struct{}{}

	for i := 0; i < clientSendBuffer+5; i++ {
		hub.Refresh(models.Gyroscope, []models.DisplayPoint{{Magnitude: float64(i)}})
	}
	require.EqualValues(t, 5, hub.Dropped())
	require.Len(t, c.send, clientSendBuffer)
	require.Equal(t, float64(clientSendBuffer+4), hub.Window(models.Gyroscope)[0].Magnitude)
}

func TestLiveHub_SnapshotEndpoint(t *testing.T) {
	hub := NewLiveHub()
	hub.Refresh(models.Gyroscope, []models.DisplayPoint{{Z: 0.5, Magnitude: 0.5}})
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/live?sensor_type=gyroscope")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var frame LiveFrame
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&frame))
	require.Len(t, frame.Points, 1)
	require.Equal(t, 0.5, frame.Points[0].Z)

	bad, err := http.Get(srv.URL + "/api/live?sensor_type=thermometer")
	require.NoError(t, err)
	bad.Body.Close()
	require.Equal(t, http.StatusBadRequest, bad.StatusCode)
}
