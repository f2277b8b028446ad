// Package wavepeek records the value history of signals during a discrete-event
// simulation and renders it as WaveJSON waveforms or tables for debugging.
//
// A Session owns the named traces of one monitoring run. The simulation adapter
// creates one Peeker per monitored signal and stores a sample each time the signal
// changes; after the run the session renders any subset of the traces.
//
// # Core Features
//
//   - Time-indexed sample store with hold-first / hold-last lookups
//   - Pointwise trace algebra (arithmetic, comparison, logic, edge detection)
//   - Unit-time inference from the recorded sample intervals
//   - WaveJSON rendering with title, caption and cycle labels
//   - Table export and aligned plain-text tables
//   - Compact binary snapshots (delta-of-delta timestamps, zstd/s2/lz4 payloads)
//
// # Basic Usage
//
//	session, _ := wavepeek.NewSession()
//	clk, _ := session.NewPeeker("clk", 1)
//	sel, _ := session.NewPeeker("sel", 2)
//
//	for t := int64(0); t < 100; t += 10 {
//	    clk.Store(trace.Int(t/10%2), t)
//	}
//	sel.Store(trace.Int(0), 0)
//	sel.Store(trace.Int(3), 40)
//
//	doc, _ := session.WaveJSON(nil, wave.WithTitle("mux"), wave.WithTick(true))
//	js, _ := doc.JSON()
//
//	_ = session.TextTable(os.Stdout, []string{"clk sel"})
//
// Derived traces come from package trace. Edge detectors compare each value with
// the one a unit time earlier:
//
//	unit, _ := session.UnitTime()
//	rising, _ := clk.Trace().PosEdge(unit)
//	fmt.Println(rising.TrigTimes()) // [10 30 50 70 90]
//
// # Package Structure
//
// This package wires the registry, wave, table and archive packages around a
// session. Each of them can be used on its own with plain *trace.Trace values.
package wavepeek

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/arloliu/wavepeek/archive"
	"github.com/arloliu/wavepeek/errs"
	"github.com/arloliu/wavepeek/internal/options"
	"github.com/arloliu/wavepeek/registry"
	"github.com/arloliu/wavepeek/table"
	"github.com/arloliu/wavepeek/trace"
	"github.com/arloliu/wavepeek/wave"
)

// Session owns the peekers of one monitoring run.
//
// Peekers are registered as name[i]; names that are never repeated lose their
// suffix the first time the session is queried. The unit time is inferred once
// and cached until SetUnitTime, Clear or ClearTraces.
//
// Session methods are safe for concurrent use. Storing samples is not: each
// Peeker has a single writer and the session must not be queried while samples
// are still being stored.
type Session struct {
	mu        sync.Mutex
	reg       *registry.Registry
	peekers   map[*trace.Trace]*Peeker
	logger    *slog.Logger
	unitTime  int64
	inferOpts []trace.InferOption
}

// NewSession creates an empty session.
//
// Parameters:
//   - opts: logger, fixed unit time and unit-time inference tolerance
//
// Returns:
//   - *Session: the session
//   - error: invalid option
func NewSession(opts ...SessionOption) (*Session, error) {
	cfg := &sessionConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	return &Session{
		reg:       registry.New(),
		peekers:   make(map[*trace.Trace]*Peeker),
		logger:    cfg.logger,
		unitTime:  cfg.unitTime,
		inferOpts: cfg.inferOpts,
	}, nil
}

// NewPeeker registers a new signal.
//
// Parameters:
//   - name: base display name, no whitespace and no trailing "[n]"
//   - bitWidth: 1 renders a binary wave, wider signals render as a bus
//
// Returns:
//   - *Peeker: ingestion handle named name[i] with the lowest free index
//   - error: ErrInvalidTraceName
func (s *Session) NewPeeker(name string, bitWidth int) (*Peeker, error) {
	tr := trace.New(name, bitWidth)
	key, err := s.reg.Register(name, tr)
	if err != nil {
		return nil, err
	}
	if key != name+"[0]" {
		s.logger.Debug("Trace name collision", "name", name, "registered_as", key)
	}

	p := &Peeker{tr: tr}
	s.mu.Lock()
	s.peekers[tr] = p
	s.mu.Unlock()

	return p, nil
}

func (s *Session) cleanup() {
	if n := s.reg.Cleanup(); n > 0 {
		s.logger.Debug("Removed index from unique trace names", "count", n)
	}
}

// Get returns the peeker registered under a display name.
func (s *Session) Get(name string) (*Peeker, error) {
	s.cleanup()
	tr, err := s.reg.Get(name)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.peekers[tr], nil
}

// Names returns the display names in registry order.
func (s *Session) Names() []string {
	s.cleanup()
	return s.reg.Names()
}

// Len returns the number of peekers.
func (s *Session) Len() int {
	return s.reg.Len()
}

// Traces returns the traces of every peeker in registry order.
func (s *Session) Traces() []*trace.Trace {
	s.cleanup()
	return s.reg.Traces()
}

// StartTime returns the earliest sample time across all peekers. Peekers without
// samples are ignored; ErrNoTraces is returned when none has samples.
func (s *Session) StartTime() (int64, error) {
	return s.extreme((*trace.Trace).StartTime, func(a, b int64) bool { return a < b })
}

// StopTime returns the latest sample time across all peekers.
func (s *Session) StopTime() (int64, error) {
	return s.extreme((*trace.Trace).StopTime, func(a, b int64) bool { return a > b })
}

func (s *Session) extreme(get func(*trace.Trace) (int64, error), better func(a, b int64) bool) (int64, error) {
	var (
		best  int64
		found bool
	)
	for _, tr := range s.reg.Traces() {
		t, err := get(tr)
		if errors.Is(err, errs.ErrEmptyTrace) {
			continue
		}
		if err != nil {
			return 0, err
		}
		if !found || better(t, best) {
			best, found = t, true
		}
	}
	if !found {
		return 0, errs.ErrNoTraces
	}

	return best, nil
}

// UnitTime returns the session unit time. Unless set explicitly it is inferred
// from all traces on first use and cached.
func (s *Session) UnitTime() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.unitTime > 0 {
		return s.unitTime, nil
	}

	unit, err := trace.InferUnitTime(s.reg.Traces(), s.inferOpts...)
	if err != nil {
		return 0, err
	}
	s.logger.Debug("Inferred unit time", "unit_time", unit, "traces", s.reg.Len())
	s.unitTime = unit

	return unit, nil
}

// SetUnitTime fixes the unit time. Zero drops the cached value so the next
// query infers it again.
func (s *Session) SetUnitTime(unit int64) error {
	if unit < 0 {
		return fmt.Errorf("%w: %d", errs.ErrInvalidUnitTime, unit)
	}

	s.mu.Lock()
	s.unitTime = unit
	s.mu.Unlock()

	return nil
}

// Clear removes every peeker and the cached unit time.
func (s *Session) Clear() {
	s.reg.Clear()

	s.mu.Lock()
	s.peekers = make(map[*trace.Trace]*Peeker)
	s.unitTime = 0
	s.mu.Unlock()
}

// ClearTraces removes the samples of every peeker but keeps the peekers, so a
// new run can be recorded under the same names.
func (s *Session) ClearTraces() {
	for _, tr := range s.reg.Traces() {
		tr.Clear()
	}

	s.mu.Lock()
	s.unitTime = 0
	s.mu.Unlock()
}

// WaveJSON renders the named traces as a WaveJSON document.
//
// Each element of names may hold several space-separated display names; an
// empty list selects every peeker in registry order. Unknown names render as
// blank rows. Unless opts carry wave.WithUnitTime, the session unit time is
// used.
func (s *Session) WaveJSON(names []string, opts ...wave.RenderOption) (wave.Document, error) {
	s.cleanup()

	cfg := &wave.RenderConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return wave.Document{}, err
	}
	if cfg.UnitTime == 0 {
		unit, err := s.UnitTime()
		if err != nil {
			return wave.Document{}, err
		}
		opts = append(opts[:len(opts):len(opts)], wave.WithUnitTime(unit))
	}

	bindings := s.reg.Select(names...)
	traces := make([]*trace.Trace, len(bindings))
	for i, b := range bindings {
		traces[i] = b.Trace
	}

	return wave.Render(traces, opts...)
}

// Table exports the named traces as rows of formatted values. Names follow the
// same rules as WaveJSON.
func (s *Session) Table(names []string, opts ...table.Option) (*table.Table, error) {
	s.cleanup()

	bindings := s.reg.Select(names...)
	cols := make([]table.Column, len(bindings))
	for i, b := range bindings {
		cols[i] = table.Column{Name: b.Name, Trace: b.Trace}
	}

	return table.Export(cols, opts...)
}

// TextTable writes the named traces to w as an aligned plain-text table.
func (s *Session) TextTable(w io.Writer, names []string, opts ...table.Option) error {
	tbl, err := s.Table(names, opts...)
	if err != nil {
		return err
	}

	return tbl.WriteText(w)
}

// Snapshot encodes every trace into a binary snapshot.
//
// The session unit time is recorded when it is known or can be inferred; an
// ambiguous unit time is stored as unknown. Options in opts take precedence.
//
// Returns:
//   - []byte: snapshot bytes, readable with LoadSnapshot or package archive
//   - error: encoder error
func (s *Session) Snapshot(opts ...archive.EncoderOption) ([]byte, error) {
	s.cleanup()

	var unit int64
	if u, err := s.UnitTime(); err == nil {
		unit = u
	} else if !errors.Is(err, errs.ErrAmbiguousUnitTime) {
		return nil, err
	}

	all := make([]archive.EncoderOption, 0, len(opts)+1)
	all = append(all, archive.WithUnitTime(unit))
	all = append(all, opts...)

	enc, err := archive.NewEncoder(all...)
	if err != nil {
		return nil, err
	}
	traces := s.reg.Traces()
	for _, tr := range traces {
		if err := enc.Add(tr); err != nil {
			return nil, fmt.Errorf("snapshot: %w", err)
		}
	}
	data, err := enc.Finish()
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}

	for _, st := range enc.Stats() {
		s.logger.Debug("Snapshot payload",
			"payload", st.Payload,
			"algorithm", st.Algorithm.String(),
			"original_size", st.OriginalSize,
			"compressed_size", st.CompressedSize)
	}
	s.logger.Debug("Snapshot encoded", "traces", len(traces), "size", len(data))

	return data, nil
}

// LoadSnapshot creates a session holding the traces of a snapshot. Traces are
// registered again under their base names, so collided names get the same
// indices back. A unit time recorded in the snapshot is restored unless opts
// fix one.
func LoadSnapshot(data []byte, opts ...SessionOption) (*Session, error) {
	s, err := NewSession(opts...)
	if err != nil {
		return nil, err
	}

	dec, err := archive.NewDecoder(data)
	if err != nil {
		return nil, err
	}
	traces, err := dec.Traces()
	if err != nil {
		return nil, err
	}

	for _, tr := range traces {
		if _, err := s.reg.Register(registry.BaseName(tr.Name()), tr); err != nil {
			return nil, err
		}
		s.peekers[tr] = &Peeker{tr: tr}
	}
	if s.unitTime == 0 {
		s.unitTime = dec.UnitTime()
	}
	s.logger.Debug("Snapshot loaded", "traces", len(traces), "unit_time", s.unitTime)

	return s, nil
}
