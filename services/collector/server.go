package collector

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/mailru/easyjson"

	"speedsense/models"
	"speedsense/utils"
	"speedsense/views"
)

// Store is the persistence the collector needs.
type Store interface {
	Insert(ctx context.Context, kind models.SensorKind, rows []models.StoredSample) error
	List(ctx context.Context, kind models.SensorKind) ([]models.StoredSample, error)
	ListBetween(ctx context.Context, kind models.SensorKind, start, end time.Time) ([]models.StoredSample, error)
}

type Params struct {
	Addr         string
	Store        Store
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Logger       *utils.Logger
}

// Server receives uploads from loggers and serves them back.
type Server struct {
	p   Params
	log *utils.Logger
}

func NewServer(p Params) *Server {
	log := p.Logger
	if log == nil {
		log = utils.L().Named("collector")
	}
	return &Server{p: p, log: log}
}

// Handler returns the routed, logged handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/data", s.dataHandler)
	mux.HandleFunc("/get-data", s.getDataHandler)
	mux.HandleFunc("/get-data-between", s.getDataBetweenHandler)
	mux.HandleFunc("/export", s.exportHandler)
	mux.HandleFunc("/health", s.healthHandler)
	return s.middleware(mux)
}

// Run starts the HTTP server and blocks until ctx is done or the listener
// fails.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	srv := &http.Server{
		Addr:         s.p.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.p.ReadTimeout,
		WriteTimeout: s.p.WriteTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()
	s.log.Info("listening on %s", s.p.Addr)

	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		_ = srv.Shutdown(shCtx)
		<-errCh
		s.log.Info("stopped")
		return nil

	case err := <-errCh:
		return err
	}
}

// dataHandler stores one upload batch. POST only.
func (s *Server) dataHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to read POST body")
		return
	}
	defer r.Body.Close()

	var batch models.UploadBatch
	if err := easyjson.Unmarshal(payload, &batch); err != nil {
		s.writeError(w, http.StatusBadRequest, ErrInvalidPayload.Msg)
		return
	}

	kind, rows, err := BuildRecords(batch)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.p.Store.Insert(r.Context(), kind, rows); err != nil {
		s.log.Error("store %s batch: %v", kind, err)
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.log.Info("stored %d %s rows  (device=%s)", len(rows), kind, batch.DeviceID)
	s.writeJSON(w, http.StatusOK, models.IngestResult{Status: "success", ProcessedCount: len(rows)})
}

// getDataHandler returns every stored row of both tables.
func (s *Server) getDataHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	acc, err := s.p.Store.List(r.Context(), models.Accelerometer)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	gyr, err := s.p.Store.List(r.Context(), models.Gyroscope)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, models.SensorDataResponse{AccelerometerData: acc, GyroscopeData: gyr})
}

// getDataBetweenHandler returns rows captured within [start, end] plus the
// per-row swing speed estimate.
func (s *Server) getDataBetweenHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	startArg, endArg := getParam(r, "start"), getParam(r, "end")
	if startArg == "" || endArg == "" {
		s.writeError(w, http.StatusBadRequest, "Start and end timestamps are required")
		return
	}
	start, err := utils.ParseISO8601(startArg)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid start timestamp: "+startArg)
		return
	}
	end, err := utils.ParseISO8601(endArg)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid end timestamp: "+endArg)
		return
	}

	acc, err := s.p.Store.ListBetween(r.Context(), models.Accelerometer, start, end)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	gyr, err := s.p.Store.ListBetween(r.Context(), models.Gyroscope, start, end)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, models.SensorDataResponse{
		AccelerometerData: acc,
		GyroscopeData:     gyr,
		SpeedData:         EstimateSpeeds(acc),
	})
}

// exportHandler streams one table as CSV.
func (s *Server) exportHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	kind, err := models.ParseSensorKind(getParam(r, "sensor_type"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rows, err := s.p.Store.List(r.Context(), kind)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+kind.String()+".csv")
	cw, err := views.NewCSVWriter(w, 0, views.SchemaStored)
	if err != nil {
		s.log.Error("export %s: %v", kind, err)
		return
	}
	for i := range rows {
		cw.WriteRecord(&rows[i])
	}
	if err := cw.Flush(); err != nil {
		s.log.Warn("export %s: %v", kind, err)
	}
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// writeJSON serialises the response via easyjson.
func (s *Server) writeJSON(w http.ResponseWriter, status int, data easyjson.Marshaler) {
	payload, err := easyjson.Marshal(data)
	if err != nil {
		s.log.Error("marshal response: %v", err)
		http.Error(w, "Internal Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(payload); err != nil {
		s.log.Warn("write response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, models.ErrorResponse{Error: msg})
}

func getParam(r *http.Request, key string) string {
	return r.URL.Query().Get(key)
}

// middleware logs every request with its latency.
func (s *Server) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
