package wave

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/arloliu/wavepeek/errs"
	"github.com/arloliu/wavepeek/internal/options"
	"github.com/arloliu/wavepeek/trace"
)

// Document is a WaveJSON waveform description.
type Document struct {
	Signal []Signal    `json:"signal"`
	Head   *Annotation `json:"head,omitempty"`
	Foot   *Annotation `json:"foot,omitempty"`
}

// Annotation is the head or foot block of a Document.
type Annotation struct {
	Text any    `json:"text,omitempty"`
	Tick *int64 `json:"tick,omitempty"`
	Tock *int64 `json:"tock,omitempty"`
}

// JSON marshals the document.
func (d Document) JSON() ([]byte, error) {
	return json.Marshal(d)
}

// Render encodes several traces into one Document over a shared window.
//
// Nil entries produce blank lanes so callers can keep a requested layout even
// when a signal is missing. Unless overridden by options the window spans every
// non-empty trace and the unit time is inferred from them.
//
// Returns ErrNoTraces when the window must be derived and no trace has samples,
// ErrAmbiguousUnitTime when the unit time cannot be inferred.
func Render(traces []*trace.Trace, opts ...RenderOption) (Document, error) {
	cfg := &RenderConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return Document{}, err
	}

	start, stop, err := window(traces, cfg)
	if err != nil {
		return Document{}, err
	}

	unit := cfg.UnitTime
	if unit == 0 {
		unit, err = trace.InferUnitTime(traces, cfg.inferOpts...)
		if err != nil {
			return Document{}, err
		}
	}

	doc := Document{Signal: make([]Signal, 0, len(traces))}
	for _, tr := range traces {
		if tr == nil || tr.Len() == 0 {
			doc.Signal = append(doc.Signal, Signal{})
			continue
		}
		sig, err := Encode(tr, start, stop, unit)
		if err != nil {
			return Document{}, fmt.Errorf("encode %q: %w", tr.Name(), err)
		}
		doc.Signal = append(doc.Signal, sig)
	}

	cycle := int64(math.RoundToEven(float64(start) / float64(unit)))
	doc.Head = annotation(titleText(cfg.Title), cfg, cycle)
	doc.Foot = annotation(captionText(cfg.Caption), cfg, cycle)

	return doc, nil
}

func window(traces []*trace.Trace, cfg *RenderConfig) (int64, int64, error) {
	var (
		first, last int64
		found       bool
	)
	for _, tr := range traces {
		if tr == nil || tr.Len() == 0 {
			continue
		}
		s, _ := tr.StartTime()
		e, _ := tr.StopTime()
		if !found {
			first, last, found = s, e, true
			continue
		}
		first, last = min(first, s), max(last, e)
	}

	if (cfg.Start == nil || cfg.Stop == nil) && !found {
		return 0, 0, errs.ErrNoTraces
	}
	if cfg.Start != nil {
		first = *cfg.Start
	}
	if cfg.Stop != nil {
		last = *cfg.Stop
	}
	if first > last {
		return 0, 0, fmt.Errorf("%w: [%d, %d]", errs.ErrInvalidWindow, first, last)
	}

	return first, last, nil
}

func annotation(text any, cfg *RenderConfig, cycle int64) *Annotation {
	if text == nil && !cfg.Tick && !cfg.Tock {
		return nil
	}

	a := &Annotation{Text: text}
	if cfg.Tick {
		a.Tick = &cycle
	}
	if cfg.Tock {
		a.Tock = &cycle
	}

	return a
}

func titleText(title string) any {
	if title == "" {
		return nil
	}

	return []any{"tspan", []any{"tspan",
		map[string]string{"fill": "blue", "font-size": "16", "font-weight": "bold"}, title}}
}

func captionText(caption string) any {
	if caption == "" {
		return nil
	}

	return []any{"tspan", []any{"tspan", map[string]string{"font-style": "italic"}, caption}}
}
