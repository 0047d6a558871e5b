package http

import (
	"context"
	"encoding/json"
	"errors"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"go-currency-converter/convert"
	"go-currency-converter/domain"
	"go-currency-converter/rates"
	"io"
	"net/http"
	"time"
)

// Rates the shared rate state the server reads from and reloads
type Rates interface {
	convert.Source
	Base() domain.Currency
	Refresh(ctx context.Context) error
}

// Server dependencies for HTTP Server functions
type Server struct {
	Rates         Rates
	DefaultTarget domain.Currency
	Logger        log.Logger
	router        *http.ServeMux
}

func NewServer(r Rates, defaultTarget domain.Currency, logger log.Logger) *Server {
	server := &Server{
		Rates:         r,
		DefaultTarget: defaultTarget,
		Logger:        logger,
		router:        http.NewServeMux(),
	}
	server.routes()
	return server
}

func (s *Server) routes() {
	s.router.Handle("GET /api/currencies", s.currencies())
	s.router.Handle("POST /api/convert", s.convert())
	s.router.Handle("POST /api/refresh", s.refresh())
}

func (s *Server) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(rw, r)
}

// currencies produces HTTP handler listing selectable target currencies
func (s *Server) currencies() http.HandlerFunc {

	type currency struct {
		Code  domain.Currency `json:"code"`
		Label string          `json:"label"`
	}

	type response struct {
		Base       string     `json:"base"`
		Date       string     `json:"date"`
		Default    string     `json:"default"`
		Currencies []currency `json:"currencies"`
	}

	return func(rw http.ResponseWriter, r *http.Request) {
		session := convert.NewSession(s.Rates, s.DefaultTarget)
		targets, ok := session.Targets()
		if !ok {
			s.fail(rw, convert.ErrRatesUnavailable)
			return
		}
		date, _ := session.AsOf()

		response := response{
			Base:       s.Rates.Base().Upper(),
			Date:       date,
			Default:    string(session.Target()),
			Currencies: make([]currency, 0, len(targets)),
		}
		for _, t := range targets {
			response.Currencies = append(response.Currencies, currency{Code: t.Code, Label: t.Label})
		}
		s.write(rw, http.StatusOK, &response)
	}
}

// amountText accepts an amount either as a JSON string or a bare JSON number
type amountText string

func (a *amountText) UnmarshalJSON(bytes []byte) error {
	if len(bytes) > 0 && bytes[0] == '"' {
		var text string
		if err := json.Unmarshal(bytes, &text); err != nil {
			return err
		}
		*a = amountText(text)
		return nil
	}
	*a = amountText(bytes)
	return nil
}

// convert produces HTTP handler for currency conversions
func (s *Server) convert() http.HandlerFunc {

	// request for unmarshalling JSON requests posted by clients
	type request struct {
		Amount amountText      `json:"amount"`
		To     domain.Currency `json:"to"`
	}

	type display struct {
		Amount string `json:"amount"`
		Rate   string `json:"rate"`
	}

	// response for marshalling JSON responses to return to clients
	type response struct {
		Amount   domain.Amount `json:"amount"`
		Rate     domain.Rate   `json:"rate"`
		Currency string        `json:"currency"`
		Original string        `json:"original"`
		Date     string        `json:"date"`
		Display  display       `json:"display"`
	}

	return func(rw http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		bytes, err := io.ReadAll(r.Body)
		if err != nil {
			s.write(rw, http.StatusBadRequest, errorBody{Error: "invalid request"})
			return
		}

		var request request
		err = json.Unmarshal(bytes, &request)
		if err != nil {
			s.write(rw, http.StatusBadRequest, errorBody{Error: "invalid json"})
			return
		}

		session := convert.NewSession(s.Rates, s.DefaultTarget)
		if request.To != "" {
			session.SetTarget(request.To)
		}
		session.SetAmount(string(request.Amount))

		begin := time.Now()
		result, err := session.Convert()
		level.Debug(s.Logger).Log(
			"method", "convert",
			"amount", request.Amount,
			"to", session.Target(),
			"rate", result.Rate,
			"converted_amount", result.Amount,
			"took", time.Since(begin),
			"err", err,
		)
		if err != nil {
			s.fail(rw, err)
			return
		}
		date, _ := session.AsOf()

		s.write(rw, http.StatusOK, &response{
			Amount:   result.Amount,
			Rate:     result.Rate,
			Currency: result.Currency,
			Original: session.Amount(),
			Date:     date,
			Display: display{
				Amount: convert.FormatAmount(result.Amount),
				Rate:   convert.FormatRate(result.Rate),
			},
		})
	}
}

// refresh produces HTTP handler reloading the rate table
func (s *Server) refresh() http.HandlerFunc {

	type response struct {
		Date string `json:"date"`
	}

	return func(rw http.ResponseWriter, r *http.Request) {
		err := s.Rates.Refresh(r.Context())
		if errors.Is(err, rates.ErrSuperseded) {
			s.write(rw, http.StatusConflict, errorBody{Error: "superseded by a newer refresh"})
			return
		}
		if err != nil {
			s.fail(rw, err)
			return
		}
		snapshot, _ := s.Rates.Current()
		s.write(rw, http.StatusOK, &response{Date: snapshot.Date})
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// fail maps an error to its status and the message shown to users
func (s *Server) fail(rw http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, convert.ErrInvalidAmount):
		s.write(rw, http.StatusBadRequest, errorBody{Error: "Please enter a valid amount"})
	case errors.Is(err, convert.ErrUnknownCurrency):
		s.write(rw, http.StatusBadRequest, errorBody{Error: "Unknown target currency"})
	case errors.Is(err, convert.ErrRatesUnavailable), errors.Is(err, rates.ErrFetch):
		level.Warn(s.Logger).Log("msg", "rates unavailable", "err", err)
		s.write(rw, http.StatusServiceUnavailable, errorBody{Error: "Failed to fetch exchange rates"})
	default:
		level.Error(s.Logger).Log("msg", "request failed", "err", err)
		s.write(rw, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

func (s *Server) write(rw http.ResponseWriter, status int, body interface{}) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	if err := json.NewEncoder(rw).Encode(body); err != nil {
		level.Error(s.Logger).Log("msg", "failed json encoding", "err", err)
	}
}
