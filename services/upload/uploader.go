package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"speedsense/models"
	"speedsense/utils"
)

var (
	ErrInvalidEndpoint = errors.New("invalid upload endpoint")
	ErrEncodePayload   = errors.New("encode upload payload")
)

// Outcome classifies a finished upload.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeTransportError
	OutcomeHTTPError
	OutcomeInvalidEndpoint
	OutcomeEncodeFailed
)

var outcomeNames = [...]string{"success", "transport_error", "http_error", "invalid_endpoint", "encode_failed"}

func (o Outcome) String() string {
	if int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return "unknown"
}

// Result is the typed completion of one upload.
type Result struct {
	Kind       models.SensorKind
	Outcome    Outcome
	StatusCode int // set for OutcomeSuccess and OutcomeHTTPError
	Samples    int
	Elapsed    time.Duration
	Err        error
}

func (r Result) OK() bool { return r.Outcome == OutcomeSuccess }

func (r Result) String() string {
	if r.OK() {
		return fmt.Sprintf("%s upload ok (status=%d, samples=%d, elapsed=%s)", r.Kind, r.StatusCode, r.Samples, r.Elapsed)
	}
	return fmt.Sprintf("%s upload failed: %s: %v", r.Kind, r.Outcome, r.Err)
}

// FailedResult builds the result for an upload rejected before any I/O.
func FailedResult(kind models.SensorKind, samples int, err error) Result {
	outcome := OutcomeTransportError
	switch {
	case errors.Is(err, ErrInvalidEndpoint):
		outcome = OutcomeInvalidEndpoint
	case errors.Is(err, ErrEncodePayload):
		outcome = OutcomeEncodeFailed
	}
	return Result{Kind: kind, Outcome: outcome, Samples: samples, Err: err}
}

// ─── Uploader ───────────────────────────────────────────────────────────

type Params struct {
	DeviceID string
	Timeout  time.Duration
	Client   *http.Client
	Clock    utils.Clock
	Logger   *utils.Logger
}

// Uploader POSTs one recorded stream per call. It never retries.
type Uploader struct {
	deviceID string
	timeout  time.Duration
	client   *http.Client
	clock    utils.Clock
	log      *utils.Logger
}

func NewUploader(p Params) *Uploader {
	u := &Uploader{
		deviceID: p.DeviceID,
		timeout:  p.Timeout,
		client:   p.Client,
		clock:    p.Clock,
		log:      p.Logger,
	}
	if u.deviceID == "" {
		u.deviceID = "watch1234"
	}
	if u.timeout <= 0 {
		u.timeout = 60 * time.Second
	}
	if u.client == nil {
		u.client = &http.Client{}
	}
	if u.clock == nil {
		u.clock = utils.SystemClock{}
	}
	if u.log == nil {
		u.log = utils.L().Named("upload")
	}
	return u
}

// Upload serialises samples and starts the POST. Endpoint and encoding
// problems are reported synchronously and no request is made. Otherwise the
// returned channel yields exactly one Result and is then closed.
func (u *Uploader) Upload(ctx context.Context, samples []models.SensorSample, endpoint string, kind models.SensorKind) (<-chan Result, error) {
	target, err := ValidateEndpoint(endpoint)
	if err != nil {
		u.log.Error("%s upload not started: %v", kind, err)
		return nil, err
	}

	body, err := Encode(BuildBatch(u.deviceID, u.clock.Now(), kind, samples))
	if err != nil {
		u.log.Error("%s upload not started: %v", kind, err)
		return nil, err
	}

	out := make(chan Result, 1)
	go func() {
		defer close(out)
		res := u.post(ctx, target, kind, body)
		res.Samples = len(samples)
		if res.OK() {
			u.log.Info("%s", res)
		} else {
			u.log.Error("%s", res)
		}
		out <- res
	}()
	return out, nil
}

func (u *Uploader) post(ctx context.Context, target string, kind models.SensorKind, body []byte) Result {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	start := time.Now()
	res := Result{Kind: kind}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		res.Outcome = OutcomeTransportError
		res.Err = err
		return res
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := u.client.Do(req)
	res.Elapsed = time.Since(start)
	if err != nil {
		res.Outcome = OutcomeTransportError
		res.Err = err
		return res
	}
	defer resp.Body.Close()

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	res.StatusCode = resp.StatusCode
	if resp.StatusCode != http.StatusOK {
		res.Outcome = OutcomeHTTPError
		res.Err = fmt.Errorf("server returned status %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
		return res
	}
	res.Outcome = OutcomeSuccess
	return res
}

// ValidateEndpoint accepts absolute http and https URLs with a host.
func ValidateEndpoint(endpoint string) (string, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidEndpoint, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("%w: unsupported scheme %q in %q", ErrInvalidEndpoint, parsed.Scheme, endpoint)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("%w: missing host in %q", ErrInvalidEndpoint, endpoint)
	}
	return parsed.String(), nil
}

// BuildBatch converts a recorded stream into its wire form.
func BuildBatch(deviceID string, now time.Time, kind models.SensorKind, samples []models.SensorSample) models.UploadBatch {
	data := make([]models.SamplePayload, len(samples))
	for i, s := range samples {
		data[i] = models.SamplePayload{
			X:         s.X,
			Y:         s.Y,
			Z:         s.Z,
			Magnitude: s.Magnitude,
			Timestamp: utils.FormatISO8601(s.Timestamp),
		}
	}
	return models.UploadBatch{
		DeviceID:   deviceID,
		Timestamp:  utils.FormatISO8601(now),
		SensorType: kind.String(),
		Data:       data,
	}
}

// Encode serialises b. Non-finite values are rejected as invalid JSON.
func Encode(b models.UploadBatch) ([]byte, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodePayload, err)
	}
	return data, nil
}
