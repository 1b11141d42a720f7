package upload

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"speedsense/models"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var uploadedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestUploader(timeout time.Duration) *Uploader {
	return NewUploader(Params{DeviceID: "watch1234", Timeout: timeout, Clock: fixedClock{uploadedAt}})
}

func wait(t *testing.T, ch <-chan Result) Result {
	t.Helper()
	select {
	case res, ok := <-ch:
		require.True(t, ok, "channel closed without a result")
		_, more := <-ch
		require.False(t, more, "channel should close after one result")
		return res
	case <-time.After(5 * time.Second):
		t.Fatal("upload did not complete")
		return Result{}
	}
}

func TestUpload_Success(t *testing.T) {
	var (
		gotBody        map[string]any
		gotContentType string
		gotMethod      string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	}))
	defer srv.Close()

	samples := []models.SensorSample{
		models.NewSensorSample(models.Vector3{X: 1}, time.Date(2024, 5, 1, 11, 59, 59, 250_000_000, time.UTC)),
	}
	ch, err := newTestUploader(5*time.Second).Upload(context.Background(), samples, srv.URL+"/data", models.Accelerometer)
	require.NoError(t, err)

	res := wait(t, ch)
	require.True(t, res.OK(), res.String())
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, 1, res.Samples)

	require.Equal(t, http.MethodPost, gotMethod)
	require.Equal(t, "application/json", gotContentType)
	require.Equal(t, "watch1234", gotBody["device_id"])
	require.Equal(t, "accelerometer", gotBody["sensor_type"])
	require.Equal(t, "2024-05-01T12:00:00.000Z", gotBody["timestamp"])

	data := gotBody["data"].([]any)
	require.Len(t, data, 1)
	first := data[0].(map[string]any)
	require.Equal(t, 1.0, first["x"])
	require.Equal(t, 0.0, first["y"])
	require.Equal(t, 1.0, first["magnitude"])
	require.Equal(t, "2024-05-01T11:59:59.250Z", first["timestamp"])
}

func TestUpload_EmptyStreamStillPosts(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(raw, &body)
		if data, ok := body["data"].([]any); !ok || len(data) != 0 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ch, err := newTestUploader(5*time.Second).Upload(context.Background(), nil, srv.URL, models.Gyroscope)
	require.NoError(t, err)
	require.True(t, wait(t, ch).OK())
	require.EqualValues(t, 1, atomic.LoadInt32(&hits))
}

func TestUpload_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	ch, err := newTestUploader(5*time.Second).Upload(context.Background(), nil, srv.URL, models.Gyroscope)
	require.NoError(t, err)

	res := wait(t, ch)
	require.Equal(t, OutcomeHTTPError, res.Outcome)
	require.Equal(t, http.StatusInternalServerError, res.StatusCode)
	require.ErrorContains(t, res.Err, "boom")
}

func TestUpload_OnlyOKCountsAsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	ch, err := newTestUploader(5*time.Second).Upload(context.Background(), nil, srv.URL, models.Accelerometer)
	require.NoError(t, err)
	res := wait(t, ch)
	require.Equal(t, OutcomeHTTPError, res.Outcome)
	require.Equal(t, http.StatusCreated, res.StatusCode)
}

func TestUpload_TransportError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	ch, err := newTestUploader(2*time.Second).Upload(context.Background(), nil, "http://"+addr+"/data", models.Accelerometer)
	require.NoError(t, err)

	res := wait(t, ch)
	require.Equal(t, OutcomeTransportError, res.Outcome)
	require.Error(t, res.Err)
	require.Zero(t, res.StatusCode)
}

func TestUpload_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ch, err := newTestUploader(50*time.Millisecond).Upload(context.Background(), nil, srv.URL, models.Accelerometer)
	require.NoError(t, err)
	require.Equal(t, OutcomeTransportError, wait(t, ch).Outcome)
}

func TestUpload_InvalidEndpoint(t *testing.T) {
	u := newTestUploader(time.Second)
	for _, endpoint := range []string{"", "not a url", "ftp://example.com/data", "http://", "://missing"} {
		ch, err := u.Upload(context.Background(), nil, endpoint, models.Accelerometer)
		require.ErrorIs(t, err, ErrInvalidEndpoint, "endpoint %q", endpoint)
		require.Nil(t, ch)

		res := FailedResult(models.Accelerometer, 0, err)
		require.Equal(t, OutcomeInvalidEndpoint, res.Outcome)
	}
}

func TestUpload_NonFiniteRejectedBeforeRequest(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	samples := []models.SensorSample{
		models.NewSensorSample(models.Vector3{X: math.NaN()}, uploadedAt),
	}
	ch, err := newTestUploader(time.Second).Upload(context.Background(), samples, srv.URL, models.Accelerometer)
	require.ErrorIs(t, err, ErrEncodePayload)
	require.Nil(t, ch)
	require.Zero(t, atomic.LoadInt32(&hits))
	require.Equal(t, OutcomeEncodeFailed, FailedResult(models.Accelerometer, 1, err).Outcome)
}

func TestUpload_ConcurrentStreamsIndependent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var body models.UploadBatch
		_ = json.Unmarshal(raw, &body)
		if body.SensorType == "gyroscope" {
			time.Sleep(20 * time.Millisecond)
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	u := newTestUploader(5 * time.Second)
	accCh, err := u.Upload(context.Background(), nil, srv.URL, models.Accelerometer)
	require.NoError(t, err)
	gyrCh, err := u.Upload(context.Background(), nil, srv.URL, models.Gyroscope)
	require.NoError(t, err)

	require.True(t, wait(t, accCh).OK())
	require.Equal(t, OutcomeHTTPError, wait(t, gyrCh).Outcome)
}

func TestBuildBatch(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 123_456_789, time.FixedZone("IST", 19800))
	b := BuildBatch("dev", at, models.Gyroscope, []models.SensorSample{
		models.NewSensorSample(models.Vector3{X: 3, Y: 4}, at),
	})
	require.Equal(t, "dev", b.DeviceID)
	require.Equal(t, "gyroscope", b.SensorType)
	require.Equal(t, "2024-05-01T06:30:00.123Z", b.Timestamp)
	require.Len(t, b.Data, 1)
	require.Equal(t, 5.0, b.Data[0].Magnitude)
	require.Equal(t, b.Timestamp, b.Data[0].Timestamp)
}

func TestOutcomeString(t *testing.T) {
	require.Equal(t, "success", OutcomeSuccess.String())
	require.Equal(t, "encode_failed", OutcomeEncodeFailed.String())
	require.Equal(t, "unknown", Outcome(42).String())
}
