/*
Package topology holds the static inputs of the route-ranking engine: railway
line topologies, station identifiers, same-station alias groups, rapid/express
overlays, transfer metadata, hub buffers and station coordinates.

# Station identifiers

Station ids follow the odpt convention "odpt.Station:<Operator>.<Line>.<Name>".
The colon-separated variant "odpt:Station:..." is accepted and rewritten:

	id, err := topology.NormalizeStationID("odpt:Station:JR-East.Yamanote.Tokyo")
	// id == "odpt.Station:JR-East.Yamanote.Tokyo"

Ids that cannot be normalized return a *StationIDError wrapping
ErrInvalidStationID.

# Loading

A Snapshot is loaded from JSON, YAML, a gob cache, or a GTFS static zip:

	snap, err := topology.LoadSnapshot(nil, "data/tokyo.json")
	if err != nil {
	    log.Fatal(err)
	}
	topology.Validate(snap).LogAll(snap.ID)

Load once at startup and hand the snapshot to router.NewEngine. The snapshot
must not be mutated afterwards.
*/
package topology
