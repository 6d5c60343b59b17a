package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/abelzeko/water-quality/internal/entities"
	"github.com/abelzeko/water-quality/internal/usecases"
	"github.com/abelzeko/water-quality/internal/verdict"
)

type resultLine struct {
	Pollutant entities.Pollutant
	Header    string
	Message   string
	Healthy   bool
}

type pageData struct {
	YearMin   int
	YearMax   int
	Year      int
	Station   string
	Warning   string
	Error     string
	Subheader string
	Results   []resultLine
	Chart     []chartSlice
}

// apiError is the JSON error body
type apiError struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (s *Server) newPage() pageData {
	return pageData{
		YearMin: s.input.YearMin,
		YearMax: s.input.YearMax,
		Year:    s.input.DefaultYear,
		Station: s.input.DefaultStation,
		Chart:   pieSlices(s.useCase.IdealProportions()),
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, s.newPage())
}

func (s *Server) handlePredictForm(w http.ResponseWriter, r *http.Request) {
	page := s.newPage()
	if err := r.ParseForm(); err != nil {
		page.Error = "The form could not be read."
		s.renderPage(w, http.StatusBadRequest, page)
		return
	}

	page.Station = r.PostForm.Get("station")
	query, err := s.parseQuery(r.PostForm.Get("year"), page.Station)
	if err != nil {
		page.Warning = fmt.Sprintf("Please enter a year between %d and %d.", s.input.YearMin, s.input.YearMax)
		s.renderPage(w, http.StatusBadRequest, page)
		return
	}
	page.Year = query.Year

	prediction, err := s.useCase.Predict(query)
	switch {
	case errors.Is(err, entities.ErrEmptyStationID):
		page.Warning = usecases.UserMessage(err)
		s.renderPage(w, http.StatusOK, page)
		return
	case err != nil:
		s.logger.Errorf("Prediction for station '%s' failed: %v", query.StationID, err)
		page.Error = usecases.UserMessage(err)
		s.renderPage(w, http.StatusInternalServerError, page)
		return
	}

	page.Subheader = usecases.Subheader(prediction.Query)
	for _, v := range prediction.Verdicts {
		page.Results = append(page.Results, resultLine{
			Pollutant: v.Pollutant,
			Header:    verdict.Header(v),
			Message:   v.Message,
			Healthy:   v.Healthy,
		})
	}
	s.renderPage(w, http.StatusOK, page)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/svg+xml")
	if err := s.templates.ExecuteTemplate(w, "chart", pieSlices(s.useCase.IdealProportions())); err != nil {
		s.logger.Errorf("Error rendering chart: %v", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "ok")
}

func (s *Server) handlePredictAPI(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	yearParam := q.Get("year")
	if yearParam == "" {
		yearParam = strconv.Itoa(s.input.DefaultYear)
	}

	query, err := s.parseQuery(yearParam, q.Get("station"))
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, apiError{Error: err.Error(), Code: "invalid_year"})
		return
	}

	prediction, err := s.useCase.Predict(query)
	switch {
	case errors.Is(err, entities.ErrEmptyStationID):
		s.writeJSON(w, http.StatusBadRequest, apiError{Error: usecases.UserMessage(err), Code: "empty_station_id"})
		return
	case err != nil:
		s.logger.Errorf("Prediction for station '%s' failed: %v", query.StationID, err)
		s.writeJSON(w, http.StatusInternalServerError, apiError{Error: usecases.UserMessage(err), Code: "model_invocation_failed"})
		return
	}
	s.writeJSON(w, http.StatusOK, prediction)
}

func (s *Server) handleProportionsAPI(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.useCase.IdealProportions())
}

func (s *Server) handleStationsAPI(w http.ResponseWriter, r *http.Request) {
	stations := s.useCase.KnownStations()
	if stations == nil {
		stations = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"stations": stations})
}

// parseQuery checks the year against the configured range. The station id is passed
// through untouched; blank ids are rejected by the use case.
func (s *Server) parseQuery(yearParam, station string) (entities.RawQuery, error) {
	year, err := strconv.Atoi(strings.TrimSpace(yearParam))
	if err != nil {
		return entities.RawQuery{}, fmt.Errorf("%w: %q is not a year", entities.ErrInvalidYear, yearParam)
	}
	rule := fmt.Sprintf("min=%d,max=%d", s.input.YearMin, s.input.YearMax)
	if err := s.validate.Var(year, rule); err != nil {
		return entities.RawQuery{}, fmt.Errorf("%w: %d is outside %d-%d", entities.ErrInvalidYear, year, s.input.YearMin, s.input.YearMax)
	}
	return entities.RawQuery{Year: year, StationID: station}, nil
}

func (s *Server) renderPage(w http.ResponseWriter, status int, page pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.templates.ExecuteTemplate(w, "page", page); err != nil {
		s.logger.Errorf("Error rendering page: %v", err)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Errorf("Error encoding response: %v", err)
	}
}
