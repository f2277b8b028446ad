// Package registry names the traces of a monitoring session.
//
// Names are disambiguated with a bracketed index as they are registered:
//
//	reg := registry.New()
//	reg.Register("x", a) // "x[0]"
//	reg.Register("x", b) // "x[1]", both entries now collided
//	reg.Register("y", c) // "y[0]"
//	reg.Cleanup()        // "y[0]" becomes "y"; x[0] and x[1] keep their index
package registry
