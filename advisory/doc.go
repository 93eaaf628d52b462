// Package advisory attaches display-only scores to ranked routes: a Transfer
// Pain Index (TPI) summarizing how hard the route's transfers are, and a
// Cascade Delay Risk (CDR) estimating how likely the ride legs are to compound
// delays. Enrich never reorders or removes routes.
package advisory
