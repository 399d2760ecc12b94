// Package buffer provides the growable index store that collects accepted
// neighbor indices while pairs are enumerated.
//
// # Growth Policy
//
// Capacity grows by a fixed increment whenever free capacity drops below a
// low-water mark. The number of accepted pairs is unknown up front, and for
// short-range interactions the per-point neighbor count is roughly constant,
// so a linear schedule keeps over-allocation bounded to one increment.
//
// # Accounting
//
// Every capacity change is reserved against a resource.Controller. A refused
// reservation surfaces as *ErrGrowth; Release hands all reserved bytes back.
package buffer
