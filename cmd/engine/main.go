// Command engine is the thin wiring entry point: it consumes
// already-typed feed tuples (no text parsing — that is an external
// collaborator's job) and answers one query against the resulting
// graph. The demo feed below stands in for a real feed loader.
package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/AbanoubPhelopos/Wsnly-Graduation-Project-Backend/pkg/config"
	"github.com/AbanoubPhelopos/Wsnly-Graduation-Project-Backend/pkg/graphbuilder"
	"github.com/AbanoubPhelopos/Wsnly-Graduation-Project-Backend/pkg/logger"
	"github.com/AbanoubPhelopos/Wsnly-Graduation-Project-Backend/pkg/present"
	"github.com/AbanoubPhelopos/Wsnly-Graduation-Project-Backend/pkg/service"
	"github.com/AbanoubPhelopos/Wsnly-Graduation-Project-Backend/pkg/util"
	"go.uber.org/zap"
)

var (
	originLat = flag.Float64("origin_lat", 30.0500, "origin latitude")
	originLon = flag.Float64("origin_lon", 31.2000, "origin longitude")
	destLat   = flag.Float64("dest_lat", 30.0600, "destination latitude")
	destLon   = flag.Float64("dest_lon", 31.2400, "destination longitude")
	cfgPath   = flag.String("config", "", "optional path to a routing config override file")
)

func main() {
	flag.Parse()

	log, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg := config.Default()
	if *cfgPath != "" {
		cfg, err = config.Load(*cfgPath)
		if err != nil {
			log.Fatal("loading config", zap.Error(err))
		}
	}

	g, fi := graphbuilder.Build(demoFeed(), cfg, log)
	if g.NumStops() == 0 {
		log.Fatal("empty graph", zap.Error(util.WrapErrorf(nil, util.ErrEmptyGraph, "feed produced no stops")))
	}

	q := service.Query{
		OriginLat: *originLat, OriginLon: *originLon,
		DestLat: *destLat, DestLon: *destLon,
	}

	ctx := context.Background()
	results, err := service.FindAllRoutes(ctx, g, fi, cfg, q, log)
	if err != nil {
		log.Fatal("route search failed", zap.Error(err))
	}

	for _, r := range results {
		view := present.Build(r, cfg)
		if !view.Found {
			log.Warn("no path found", zap.String("type", view.Type), zap.Error(util.WrapErrorf(nil, util.ErrNoPath, "no path for %s", view.Type)))
			fmt.Printf("%s: no path found\n", view.Type)
			continue
		}
		fmt.Printf("%s: %s, %d segments, %.0f m\n", view.Type, view.TotalDurationFormatted, view.TotalSegments, view.TotalDistanceMeters)
		for _, seg := range view.Segments {
			fmt.Printf("  %-9s %-20s -> %-20s (%d m, %d s, %d stops)\n", seg.Method, seg.Start.Name, seg.End.Name, seg.DistanceMeters, seg.DurationSeconds, seg.NumStops)
		}
	}
}

// demoFeed is a small illustrative Cairo-style feed (one metro trip, one
// bus trip, linked by a short walk between the Opera metro and bus
// stops) used only to exercise the wiring;
// production callers pass a real parsed feed to graphbuilder.Build.
func demoFeed() graphbuilder.Feed {
	return graphbuilder.Feed{
		Routes: []graphbuilder.Route{
			{RouteID: "R_METRO1", AgencyID: "M_CAI-METRO", ShortName: "Line 1", Type: 1},
			{RouteID: "R_BUS1", AgencyID: "B1_CAI_BUS", ShortName: "Bus 1", Type: 3},
		},
		Trips: []graphbuilder.Trip{
			{RouteID: "R_METRO1", ServiceID: "WEEKDAY", TripID: "T_METRO1"},
			{RouteID: "R_BUS1", ServiceID: "WEEKDAY", TripID: "T_BUS1"},
		},
		Stops: []graphbuilder.StopRecord{
			{StopID: "S_MTAHRIR", Name: "Tahrir Metro", Lat: 30.0500, Lon: 31.2000},
			{StopID: "S_MSADAT", Name: "Sadat", Lat: 30.0550, Lon: 31.2100},
			{StopID: "S_MOPERA", Name: "Opera", Lat: 30.0600, Lon: 31.2200},
			{StopID: "S_BOPERA", Name: "Opera Bus Stop", Lat: 30.0605, Lon: 31.2205},
			{StopID: "S_BZAMALEK", Name: "Zamalek", Lat: 30.0620, Lon: 31.2300},
			{StopID: "S_BDOKKI", Name: "Dokki", Lat: 30.0600, Lon: 31.2400},
		},
		StopTimes: []graphbuilder.StopTime{
			{TripID: "T_METRO1", StopID: "S_MTAHRIR", StopSequence: 1},
			{TripID: "T_METRO1", StopID: "S_MSADAT", StopSequence: 2},
			{TripID: "T_METRO1", StopID: "S_MOPERA", StopSequence: 3},

			{TripID: "T_BUS1", StopID: "S_BOPERA", StopSequence: 1},
			{TripID: "T_BUS1", StopID: "S_BZAMALEK", StopSequence: 2},
			{TripID: "T_BUS1", StopID: "S_BDOKKI", StopSequence: 3},
		},
	}
}
