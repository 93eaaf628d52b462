package traffic

import (
	"testing"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
)

const feedTime = 1760000000

func feed(t *testing.T, entities ...*gtfsrtpb.FeedEntity) []byte {
	t.Helper()
	fm := &gtfsrtpb.FeedMessage{
		Header: &gtfsrtpb.FeedHeader{
			GtfsRealtimeVersion: proto.String("2.0"),
			Timestamp:           proto.Uint64(feedTime),
		},
		Entity: entities,
	}
	data, err := proto.Marshal(fm)
	require.NoError(t, err)
	return data
}

func alertEntity(id string, effect gtfsrtpb.Alert_Effect, header string, routes ...string) *gtfsrtpb.FeedEntity {
	a := &gtfsrtpb.Alert{
		Effect: effect.Enum(),
		HeaderText: &gtfsrtpb.TranslatedString{
			Translation: []*gtfsrtpb.TranslatedString_Translation{
				{Text: proto.String(header), Language: proto.String("en")},
			},
		},
	}
	for _, r := range routes {
		a.InformedEntity = append(a.InformedEntity, &gtfsrtpb.EntitySelector{RouteId: proto.String(r)})
	}
	return &gtfsrtpb.FeedEntity{Id: proto.String(id), Alert: a}
}

func tripEntity(id, route string, delaySeconds int32, canceled bool) *gtfsrtpb.FeedEntity {
	td := &gtfsrtpb.TripDescriptor{TripId: proto.String(id), RouteId: proto.String(route)}
	tu := &gtfsrtpb.TripUpdate{Trip: td}
	if canceled {
		td.ScheduleRelationship = gtfsrtpb.TripDescriptor_CANCELED.Enum()
	} else {
		tu.StopTimeUpdate = []*gtfsrtpb.TripUpdate_StopTimeUpdate{{
			StopSequence: proto.Uint32(1),
			Arrival:      &gtfsrtpb.TripUpdate_StopTimeEvent{Delay: proto.Int32(delaySeconds)},
		}}
	}
	return &gtfsrtpb.FeedEntity{Id: proto.String(id), TripUpdate: tu}
}

func TestRouteMap_Railway(t *testing.T) {
	m := RouteMap{"JY": "odpt:Railway:JR-East.Yamanote"}
	assert.Equal(t, "odpt.Railway:JR-East.Yamanote", m.Railway("JY"))
	assert.Equal(t, "odpt.Railway:Toei.Oedo", m.Railway("odpt:Railway:Toei.Oedo"))
}

func TestParseAlerts(t *testing.T) {
	routes := RouteMap{"JY": "odpt.Railway:JR-East.Yamanote", "G": "odpt.Railway:TokyoMetro.Ginza"}
	expired := alertEntity("old", gtfsrtpb.Alert_NO_SERVICE, "Old suspension", "OLD")
	expired.Alert.ActivePeriod = []*gtfsrtpb.TimeRange{{
		Start: proto.Uint64(feedTime - 7200),
		End:   proto.Uint64(feedTime - 3600),
	}}

	data := feed(t,
		alertEntity("a1", gtfsrtpb.Alert_NO_SERVICE, "Yamanote suspended", "JY"),
		alertEntity("a2", gtfsrtpb.Alert_SIGNIFICANT_DELAYS, "Ginza delays", "G"),
		alertEntity("a3", gtfsrtpb.Alert_OTHER_EFFECT, "Service halted after an incident", "Z"),
		alertEntity("a4", gtfsrtpb.Alert_OTHER_EFFECT, "Elevator out of order", "Q"),
		expired,
	)

	batch, err := ParseAlerts(data, routes)
	require.NoError(t, err)
	assert.Equal(t, int64(feedTime), batch.Timestamp)
	require.Len(t, batch.Conditions, 3)

	byID := map[string]Condition{}
	for _, c := range batch.Conditions {
		byID[c.RailwayID] = c
	}
	assert.Equal(t, StatusSuspended, byID["odpt.Railway:JR-East.Yamanote"].Status)
	assert.Equal(t, StatusDelayed, byID["odpt.Railway:TokyoMetro.Ginza"].Status)
	assert.Equal(t, StatusSuspended, byID["Z"].Status)
	assert.NotContains(t, byID, "OLD")
	assert.NotContains(t, byID, "Q")
}

func TestParseAlerts_EmptyAndInvalid(t *testing.T) {
	batch, err := ParseAlerts(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, batch.Conditions)

	_, err = ParseAlerts([]byte{0xff, 0xff, 0xff}, nil)
	assert.Error(t, err)
}

func TestParseTripUpdates(t *testing.T) {
	data := feed(t,
		tripEntity("t1", "JY", 300, false),
		tripEntity("t2", "JY", 420, false),
		tripEntity("t3", "G", 60, false),
		tripEntity("t4", "A", 0, true),
		tripEntity("t5", "A", 0, true),
		tripEntity("t6", "M", 0, true),
		tripEntity("t7", "M", 30, false),
	)

	batch, err := ParseTripUpdates(data, RouteMap{"JY": "odpt.Railway:JR-East.Yamanote"}, 0)
	require.NoError(t, err)
	require.Len(t, batch.Conditions, 2)

	assert.Equal(t, "A", batch.Conditions[0].RailwayID)
	assert.Equal(t, StatusSuspended, batch.Conditions[0].Status)

	assert.Equal(t, "odpt.Railway:JR-East.Yamanote", batch.Conditions[1].RailwayID)
	assert.Equal(t, StatusDelayed, batch.Conditions[1].Status)
	assert.Equal(t, 6, batch.Conditions[1].DelayMinutes)

	strict, err := ParseTripUpdates(data, nil, 10)
	require.NoError(t, err)
	require.Len(t, strict.Conditions, 1)
	assert.Equal(t, "A", strict.Conditions[0].RailwayID)
}

func TestActiveAt(t *testing.T) {
	now := time.Unix(feedTime, 0).Unix()
	assert.True(t, activeAt(nil, now))
	assert.True(t, activeAt([]*gtfsrtpb.TimeRange{{Start: proto.Uint64(uint64(now - 10))}}, now))
	assert.False(t, activeAt([]*gtfsrtpb.TimeRange{{Start: proto.Uint64(uint64(now + 10))}}, now))
}
