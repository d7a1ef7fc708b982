// Package service orchestrates the four mode-masked searches
// (bus_only, metro_only, microbus_only, optimal) against one immutable
// graph, validating the inbound coordinates first.
package service

import (
	"context"
	"fmt"
	"math"

	"github.com/AbanoubPhelopos/Wsnly-Graduation-Project-Backend/pkg"
	"github.com/AbanoubPhelopos/Wsnly-Graduation-Project-Backend/pkg/config"
	"github.com/AbanoubPhelopos/Wsnly-Graduation-Project-Backend/pkg/feedindex"
	"github.com/AbanoubPhelopos/Wsnly-Graduation-Project-Backend/pkg/graph"
	"github.com/AbanoubPhelopos/Wsnly-Graduation-Project-Backend/pkg/routing"
	"github.com/AbanoubPhelopos/Wsnly-Graduation-Project-Backend/pkg/util"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Query is the inbound (origin, destination) coordinate pair. Bounds are
// enforced with gte/lte rather than required so that 0,0 is a legal
// coordinate; a NaN value fails every gte/lte comparison and is rejected
// the same way an out-of-range value is.
type Query struct {
	OriginLat float64 `validate:"gte=-90,lte=90"`
	OriginLon float64 `validate:"gte=-180,lte=180"`
	DestLat   float64 `validate:"gte=-90,lte=90"`
	DestLon   float64 `validate:"gte=-180,lte=180"`
}

var validate = validator.New()

// searches names the RouteResult produced for each mode mask, in a
// fixed order: bus_only, metro_only, microbus_only, optimal.
var searches = []struct {
	label string
	mask  pkg.Mode
}{
	{"bus_only", pkg.BUS | pkg.WALK},
	{"metro_only", pkg.METRO | pkg.WALK},
	{"microbus_only", pkg.MICROBUS | pkg.WALK},
	{"optimal", pkg.ANY | pkg.WALK},
}

// FindAllRoutes runs the four mode-masked searches concurrently against
// graph. Each search owns its own frontier and per-node scratch arrays,
// so running them under an errgroup needs no locking.
func FindAllRoutes(ctx context.Context, g *graph.StopGraph, fi *feedindex.FeedIndex, cfg config.RoutingConfig, q Query, log *zap.Logger) ([4]routing.RouteResult, error) {
	if log == nil {
		log = zap.NewNop()
	}

	if err := validate.Struct(q); err != nil {
		return invalidResults(), util.WrapErrorf(err, util.ErrInvalidCoordinate, "invalid query: %v", err)
	}

	var results [4]routing.RouteResult
	group, gctx := errgroup.WithContext(ctx)
	for i, s := range searches {
		i, s := i, s
		group.Go(func() error {
			results[i] = routing.Search(gctx, g, fi, cfg, q.OriginLat, q.OriginLon, q.DestLat, q.DestLon, s.mask, s.label)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return results, fmt.Errorf("route search: %w", err)
	}

	log.Debug("routes computed",
		zap.Float64("origin_lat", q.OriginLat), zap.Float64("origin_lon", q.OriginLon),
		zap.Float64("dest_lat", q.DestLat), zap.Float64("dest_lon", q.DestLon),
	)

	return results, nil
}

func invalidResults() [4]routing.RouteResult {
	var out [4]routing.RouteResult
	for i, s := range searches {
		out[i] = routing.RouteResult{Type: s.label, TotalDuration: math.Inf(1)}
	}
	return out
}
