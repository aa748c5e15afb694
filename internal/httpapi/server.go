package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/jkratochvil/karty/server/internal/karty/model"
	"github.com/jkratochvil/karty/server/internal/karty/service"
	"github.com/jkratochvil/karty/server/internal/karty/types"
)

type Dependencies struct {
	Logger         *log.Logger
	Addr           string
	AccessService  *service.AccessService
	VoucherService *service.VoucherService
}

type Server struct {
	httpServer *http.Server
	logger     *log.Logger
	mux        *http.ServeMux
	access     *service.AccessService
	vouchers   *service.VoucherService
}

func NewServer(d Dependencies) *Server {
	mux := http.NewServeMux()

	s := &Server{
		logger:   d.Logger,
		mux:      mux,
		access:   d.AccessService,
		vouchers: d.VoucherService,
	}

	mux.HandleFunc("POST /v1/access_request", s.handleAccessRequest)
	mux.HandleFunc("GET /v1/meal_vouchers", s.handleMealVouchers)

	handler := loggingMiddleware(d.Logger, mux)

	s.httpServer = &http.Server{
		Addr:              d.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleAccessRequest(w http.ResponseWriter, r *http.Request) {
	var req types.ScanRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}

	resp, err := s.access.Decide(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidChip):
			writeError(w, http.StatusBadRequest, "invalid_chip_id", err.Error())
		case errors.Is(err, service.ErrInvalidReader):
			writeError(w, http.StatusBadRequest, "invalid_reader_id", err.Error())
		default:
			// A store failure is not a deny.  The reader must be able to
			// tell "no" apart from "could not decide".
			s.logger.Printf("access_request error: %v", err)
			writeError(w, http.StatusInternalServerError, "repository_unavailable", "could not determine authorization")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMealVouchers(w http.ResponseWriter, r *http.Request) {
	card := strings.TrimSpace(r.URL.Query().Get("card"))
	monthStr := strings.TrimSpace(r.URL.Query().Get("month"))

	month, err := model.ParseMonth(monthStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_month", "month must be YYYY-MM")
		return
	}

	rep, err := s.vouchers.Report(r.Context(), model.CardNumber(card), month)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCard):
			writeError(w, http.StatusBadRequest, "invalid_card", err.Error())
		case errors.Is(err, service.ErrInvalidMonth):
			writeError(w, http.StatusBadRequest, "invalid_month", err.Error())
		default:
			s.logger.Printf("meal_vouchers error: %v", err)
			writeError(w, http.StatusInternalServerError, "repository_unavailable", "could not compute report")
		}
		return
	}

	writeJSON(w, http.StatusOK, rep)
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorBody{Error: code, Message: msg})
}
