// Package wave renders traces as WaveJSON, the waveform description consumed by
// WaveDrom.
//
// Encode turns one trace into a Signal whose wave string holds one character per
// unit time over a closed window. Render lays several traces out on a shared
// window and unit time and wraps them in a Document with optional head and foot
// annotations:
//
//	doc, err := wave.Render([]*trace.Trace{clk, sel, out}, wave.WithTitle("Mux"))
//	if err != nil {
//		return err
//	}
//	raw, err := doc.JSON()
package wave
