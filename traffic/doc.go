// Package traffic models live line conditions (normal, delayed, suspended) and
// ingests them from GTFS-Realtime service alerts, trip updates, or a JSON
// status document.
//
// Conditions are query inputs: the router prunes suspended railways and adds
// reported delays at boarding time. A missing condition means normal service.
//
// Feed keeps the latest conditions in memory and refreshes them on an
// interval; readers never block a refresh for longer than a map swap.
package traffic
