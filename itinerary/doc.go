// Package itinerary defines the ranked route types returned by the router.
//
// A RouteOption is an ordered list of steps:
//
//   - origin: the departure station
//   - train: one continuous ride on a single railway
//   - transfer: a walk between platforms, or a change of train in place
//   - destination: the arrival station
//
// All types include JSON struct tags for serialization.
package itinerary
