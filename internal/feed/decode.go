package feed

import (
	"fmt"
	"strings"
	"time"

	gtfsrt "github.com/jamespfennell/gtfs/proto"
	"google.golang.org/protobuf/proto"

	"github.com/jusunglee/mta-mcp/internal/models"
)

// StopNamer resolves stop ids to station names
type StopNamer interface {
	StopName(stopID string) (string, bool)
}

// Unmarshal parses a GTFS-realtime payload
func Unmarshal(data []byte) (*gtfsrt.FeedMessage, error) {
	fm := &gtfsrt.FeedMessage{}
	if err := proto.Unmarshal(data, fm); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}
	return fm, nil
}

// Decode parses a GTFS-realtime payload into trips
func Decode(data []byte, names StopNamer) ([]models.Trip, error) {
	fm, err := Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return Trips(fm, names), nil
}

// Trips converts every trip update entity into a Trip, in feed order
func Trips(fm *gtfsrt.FeedMessage, names StopNamer) []models.Trip {
	var trips []models.Trip
	for _, e := range fm.GetEntity() {
		tu := e.GetTripUpdate()
		if tu == nil {
			continue
		}
		trips = append(trips, convertTripUpdate(tu, names))
	}
	return trips
}

func convertTripUpdate(tu *gtfsrt.TripUpdate, names StopNamer) models.Trip {
	trip := models.Trip{
		TripID:          tu.GetTrip().GetTripId(),
		RouteID:         tu.GetTrip().GetRouteId(),
		StopTimeUpdates: make([]models.StopTimeUpdate, 0, len(tu.GetStopTimeUpdate())),
	}

	for _, stu := range tu.GetStopTimeUpdate() {
		update := models.StopTimeUpdate{StopID: stu.GetStopId()}
		if names != nil {
			update.StopName, _ = names.StopName(update.StopID)
		}
		if ts := stu.GetArrival().GetTime(); ts != 0 {
			arrival := time.Unix(ts, 0)
			update.Arrival = &arrival
		}
		trip.StopTimeUpdates = append(trip.StopTimeUpdates, update)
	}

	trip.Direction = DirectionFromDescriptor(tu.GetTrip())
	if trip.Direction == "" {
		trip.Direction = DirectionFromTripID(trip.TripID)
	}
	if trip.Direction == "" && len(trip.StopTimeUpdates) > 0 {
		trip.Direction = DirectionFromStopID(trip.StopTimeUpdates[0].StopID)
	}
	return trip
}

// DirectionFromDescriptor reads the direction from the NYCT trip descriptor
// extension. East and west have no N/S equivalent and yield "".
func DirectionFromDescriptor(td *gtfsrt.TripDescriptor) string {
	if td == nil || !proto.HasExtension(td, gtfsrt.E_NyctTripDescriptor) {
		return ""
	}
	nyct, ok := proto.GetExtension(td, gtfsrt.E_NyctTripDescriptor).(*gtfsrt.NyctTripDescriptor)
	if !ok || nyct.Direction == nil {
		return ""
	}
	switch nyct.GetDirection() {
	case gtfsrt.NyctTripDescriptor_NORTH:
		return models.North
	case gtfsrt.NyctTripDescriptor_SOUTH:
		return models.South
	}
	return ""
}

// DirectionFromTripID extracts N or S from an NYCT trip id such as
// "051600_1..N03R" or "121850_GS.N01R". Returns "" when absent.
func DirectionFromTripID(tripID string) string {
	i := strings.IndexByte(tripID, '.')
	if i < 0 {
		return ""
	}
	rest := strings.TrimLeft(tripID[i:], ".")
	if rest == "" {
		return ""
	}
	switch d := rest[:1]; d {
	case models.North, models.South:
		return d
	}
	return ""
}

// DirectionFromStopID returns the platform suffix of a stop id ("127N" -> "N")
func DirectionFromStopID(stopID string) string {
	if len(stopID) < 2 {
		return ""
	}
	switch d := stopID[len(stopID)-1:]; d {
	case models.North, models.South:
		return d
	}
	return ""
}
