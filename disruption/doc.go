// Package disruption removes ranked routes that ride a suspended railway.
//
// Conditions are reduced to a set of blocked railway tokens. A token is the
// railway id lowercased with its "odpt.railway:" prefix removed, so
// "odpt.Railway:JR-East.Yamanote" and "jr-east.yamanote" match. Long tokens
// also match by prefix, which lets an operator-wide or line-family suspension
// block every variant of that line.
package disruption
