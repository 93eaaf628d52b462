/*
Package router ranks rail routes between station sets.

An Engine compiles a topology.Snapshot into an immutable Graph once and then
answers any number of concurrent queries against it:

	eng := router.NewEngine(snap)
	routes, err := eng.RankRoutes(ctx, router.Query{
	    Origins:      []string{"odpt.Station:JR-East.Yamanote.Shinjuku"},
	    Destinations: []string{"odpt.Station:JR-East.Yamanote.Tokyo"},
	    Locale:       "en",
	})

Each query runs one A* search per Strategy. A search state is the station
together with the railway and operator it was reached on, because the cost of
the next edge depends on whether it continues the same ride, changes line, or
changes operator. The strategies reduce the shared RouteCosts vector to a
score; every score is at least the travel time, so the distance heuristic
(minutes per great-circle km) stays a lower bound for all of them.

Winning paths are materialized into localized itinerary.RouteOption values,
deduplicated by physical path, filtered against suspended railways and
annotated with advisory scores.

All tuned constants live in Tuning and can be overridden from configuration.
*/
package router
