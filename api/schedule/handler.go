// Package schedule exposes the observation service over a JSON HTTP API.
package schedule

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/flightobs/flightwatch/core/logger"
	"github.com/flightobs/flightwatch/core/model"
	"github.com/flightobs/flightwatch/core/roster"
	"github.com/flightobs/flightwatch/core/scheduler"
	"github.com/flightobs/flightwatch/core/store"
)

// Handler serves the schedule API. Requests must include an Authorization
// header with "Bearer <token>" when token is non-empty.
type Handler struct {
	mgr   *roster.Manager
	token string
	log   logger.Logger
}

// New builds the API handler.
func New(mgr *roster.Manager, token string, log logger.Logger) http.Handler {
	h := &Handler{mgr: mgr, token: token, log: log}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/flights", h.authed(h.flights))
	mux.HandleFunc("POST /api/schedule/suggest", h.authed(h.suggest))
	mux.HandleFunc("POST /api/schedule/confirm", h.authed(h.confirm))
	mux.HandleFunc("POST /api/signup", h.authed(h.signup))
	mux.HandleFunc("GET /api/tracker", h.authed(h.tracker))
	return mux
}

func (h *Handler) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.token != "" {
			auth := r.Header.Get("Authorization")
			if auth != "Bearer "+h.token {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}
		next(w, r)
	}
}

// FlightView is the wire form of a catalog entry. Time fields render as
// "HH:MM" and are empty when the stored value did not parse.
type FlightView struct {
	Number       string   `json:"number"`
	Carrier      string   `json:"carrier,omitempty"`
	Gate         string   `json:"gate"`
	Destination  string   `json:"destination"`
	SchedDep     string   `json:"sched_dep,omitempty"`
	BoardStart   string   `json:"board_start,omitempty"`
	BoardEnd     string   `json:"board_end,omitempty"`
	HasEquipment bool     `json:"has_equipment"`
	Important    bool     `json:"important"`
	Observers    []string `json:"observers,omitempty"`
}

func clock(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("15:04")
}

func viewOf(f model.Flight) FlightView {
	return FlightView{
		Number:       f.Number,
		Carrier:      f.Carrier,
		Gate:         f.Gate.String(),
		Destination:  f.Destination,
		SchedDep:     clock(f.ScheduledDep),
		BoardStart:   clock(f.BoardingStart),
		BoardEnd:     clock(f.BoardingEnd),
		HasEquipment: f.HasEquipment,
		Important:    f.Important,
		Observers:    f.Observers,
	}
}

func (h *Handler) flights(w http.ResponseWriter, r *http.Request) {
	day := r.URL.Query().Get("day")
	if day == "" {
		http.Error(w, "day is required", http.StatusBadRequest)
		return
	}
	flights, err := h.mgr.Catalog(r.Context(), day)
	if err != nil {
		h.fail(w, err)
		return
	}
	views := make([]FlightView, len(flights))
	for i, f := range flights {
		views[i] = viewOf(f)
	}
	h.reply(w, views)
}

// SuggestRequest asks for a schedule suggestion.
type SuggestRequest struct {
	Day         string `json:"day"`
	Observer    string `json:"observer"`
	WindowStart string `json:"window_start"`
	WindowEnd   string `json:"window_end"`
}

// SuggestEntry is one assigned flight in the response.
type SuggestEntry struct {
	FlightView
	TimeBetween string `json:"time_between"`
	Preassigned bool   `json:"preassigned,omitempty"`
}

// SuggestResponse is the suggested itinerary.
type SuggestResponse struct {
	RequestID string         `json:"request_id"`
	Observer  string         `json:"observer"`
	Entries   []SuggestEntry `json:"entries"`
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	var req SuggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Day == "" || req.Observer == "" {
		http.Error(w, "day and observer are required", http.StatusBadRequest)
		return
	}
	window, err := h.mgr.ParseWindow(req.WindowStart, req.WindowEnd)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := h.mgr.Suggest(r.Context(), req.Day, req.Observer, window)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.reply(w, toSuggestResponse(res))
}

func toSuggestResponse(res scheduler.Result) SuggestResponse {
	out := SuggestResponse{RequestID: res.RequestID, Observer: res.Observer, Entries: []SuggestEntry{}}
	for _, e := range res.Entries {
		out.Entries = append(out.Entries, SuggestEntry{
			FlightView:  viewOf(e.Flight),
			TimeBetween: e.TimeBetween(),
			Preassigned: e.Preassigned,
		})
	}
	return out
}

// ConfirmRequest commits a selection of suggested flights.
type ConfirmRequest struct {
	Day      string   `json:"day"`
	Observer string   `json:"observer"`
	Flights  []string `json:"flights"`
}

func (h *Handler) confirm(w http.ResponseWriter, r *http.Request) {
	var req ConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Day == "" || req.Observer == "" {
		http.Error(w, "day and observer are required", http.StatusBadRequest)
		return
	}
	res, err := h.mgr.Confirm(r.Context(), req.Day, req.Observer, req.Flights)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.reply(w, res)
}

// SignUpRequest claims a single flight.
type SignUpRequest struct {
	Day      string `json:"day"`
	Observer string `json:"observer"`
	Flight   string `json:"flight"`
	Override bool   `json:"override"`
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Day == "" || req.Observer == "" || req.Flight == "" {
		http.Error(w, "day, observer and flight are required", http.StatusBadRequest)
		return
	}
	res, err := h.mgr.SignUp(r.Context(), req.Day, req.Observer, req.Flight, req.Override)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.reply(w, res)
}

func (h *Handler) tracker(w http.ResponseWriter, r *http.Request) {
	day := r.URL.Query().Get("day")
	if day == "" {
		http.Error(w, "day is required", http.StatusBadRequest)
		return
	}
	sum, err := h.mgr.Tracker(r.Context(), day)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.reply(w, sum)
}

func (h *Handler) reply(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Errorf("encode response: %v", err)
	}
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, store.ErrUnavailable):
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
