package convert

import (
	"go-currency-converter/domain"
	"strings"
)

// DefaultTarget currency selected when a session starts
const DefaultTarget domain.Currency = "inr"

// Source provides the current rate snapshot, false while none is loaded.
// rates.Loader is the production Source.
type Source interface {
	Current() (domain.Snapshot, bool)
}

// Target a selectable currency
type Target struct {
	Code  domain.Currency
	Label string
}

// Session is the state of one user of the converter: the amount being typed,
// the selected target and the last result. Rates are read from the shared Source,
// everything else belongs to the session. A Session must not be used concurrently.
type Session struct {
	source Source

	amount string
	target domain.Currency

	// result nil when there is no current result
	result *domain.Exchanged
}

// NewSession starts a session on source with target selected
func NewSession(source Source, target domain.Currency) *Session {
	if target == "" {
		target = DefaultTarget
	}
	return &Session{
		source: source,
		target: domain.Currency(strings.ToLower(string(target))),
	}
}

// SetAmount replaces the amount text and drops the previous result
func (s *Session) SetAmount(text string) {
	s.amount = text
	s.result = nil
}

// SetTarget selects a target currency and drops the previous result
func (s *Session) SetTarget(code domain.Currency) {
	s.target = domain.Currency(strings.ToLower(strings.TrimSpace(string(code))))
	s.result = nil
}

// Amount the amount text as entered
func (s *Session) Amount() string {
	return s.amount
}

// Target the selected currency
func (s *Session) Target() domain.Currency {
	return s.target
}

// Convert converts the current amount into the selected target with the current rates.
// The previous result is cleared first, so a failed conversion leaves no result behind.
func (s *Session) Convert() (domain.Exchanged, error) {
	s.result = nil

	snapshot, ok := s.source.Current()
	if !ok {
		return domain.Exchanged{}, ErrRatesUnavailable
	}

	result, err := Quote(snapshot, s.amount, s.target)
	if err != nil {
		return domain.Exchanged{}, err
	}
	s.result = &result
	return result, nil
}

// Result the last successful conversion, if still current
func (s *Session) Result() (domain.Exchanged, bool) {
	if s.result == nil {
		return domain.Exchanged{}, false
	}
	return *s.result, true
}

// Targets the selectable currencies in display order, false while no rates are loaded
func (s *Session) Targets() ([]Target, bool) {
	snapshot, ok := s.source.Current()
	if !ok {
		return nil, false
	}
	codes := SortedTargets(snapshot.Rates, snapshot.Base)
	targets := make([]Target, 0, len(codes))
	for _, code := range codes {
		targets = append(targets, Target{Code: code, Label: LabelFor(code)})
	}
	return targets, true
}

// AsOf the date of the rates in use, false while no rates are loaded
func (s *Session) AsOf() (string, bool) {
	snapshot, ok := s.source.Current()
	if !ok {
		return "", false
	}
	return snapshot.Date, true
}
