package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jack-barr3tt/stk-engine/src/common/data"
	"github.com/jack-barr3tt/stk-engine/src/common/stations"
	"github.com/jack-barr3tt/stk-engine/src/common/types"
	"github.com/jack-barr3tt/stk-engine/src/common/utils"
)

type source struct {
	key      string
	location string
	t        types.InspectionType
}

func sources() []source {
	return []source{
		{key: "stations_stk", location: utils.GetEnv("STATIONS_STK_FILE", "data/stations_stk.json"), t: types.InspectionSTK},
		{key: "stations_me", location: utils.GetEnv("STATIONS_ME_FILE", "data/stations_me.json"), t: types.InspectionME},
	}
}

// ReferenceRequest opens a station record set, either a local file or an http(s) URL.
func ReferenceRequest(ctx context.Context, location string) (io.ReadCloser, error) {
	if !strings.HasPrefix(location, "http://") && !strings.HasPrefix(location, "https://") {
		return os.Open(location)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, err
	}
	if apiKey := os.Getenv("REFERENCE_API_KEY"); apiKey != "" {
		req.Header.Set("x-apikey", apiKey)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, location)
	}
	return resp.Body, nil
}

func readReference(ctx context.Context, src source) (*types.StationReference, error) {
	body, err := ReferenceRequest(ctx, src.location)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	ref, err := stations.LoadJSON(body)
	if err != nil {
		return nil, err
	}
	if ref.Type != src.t {
		return nil, fmt.Errorf("%s holds %s stations, expected %s", src.location, ref.Type, src.t)
	}
	return ref, nil
}

func UpdateStations(ctx context.Context, dc *data.DataClient, src source) (int, error) {
	ref, err := readReference(ctx, src)
	if err != nil {
		return 0, err
	}

	n, err := dc.ReplaceStations(ctx, src.t, ref.Stations)
	if err != nil {
		return 0, err
	}

	if err := dc.MarkReferenceFetched(ctx, src.key); err != nil {
		return n, err
	}
	return n, nil
}

func main() {
	utils.LoadEnv()
	utils.InitLogger()
	defer utils.SyncLogger()
	logger := utils.NamedLogger("reference-data")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pg, err := utils.NewPostgresConnection(ctx)
	if err != nil {
		logger.Fatalw("failed to connect to database", "error", err)
	}
	defer pg.Close()

	dc := data.NewDataClient(pg, nil, logger)
	if err := dc.EnsureStationSchema(ctx); err != nil {
		logger.Fatalw("failed to prepare station tables", "error", err)
	}

	bySource := map[string]source{}
	keys := []string{}
	for _, src := range sources() {
		bySource[src.key] = src
		keys = append(keys, src.key)
	}
	if err := dc.EnsureReferenceFetch(ctx, keys, utils.GetEnvDuration("REFERENCE_MAX_AGE", 24*time.Hour)); err != nil {
		logger.Fatalw("failed to prepare reference_fetch", "error", err)
	}

	interval := utils.GetEnvDuration("REFERENCE_INTERVAL", time.Hour)
	for {
		stale, err := dc.StaleReferenceKeys(ctx)
		if err != nil {
			logger.Errorw("failed to list stale reference data", "error", err)
		}

		for _, key := range stale {
			src, ok := bySource[key]
			if !ok {
				logger.Warnw("unknown reference key", "key", key)
				continue
			}

			logger.Infow("updating station reference data", "type", src.t, "source", src.location)
			n, err := UpdateStations(ctx, dc, src)
			if err != nil {
				logger.Errorw("error updating station reference data", "type", src.t, "error", err)
				continue
			}
			logger.Infow("station reference data updated", "type", src.t, "stations", n)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(interval):
		}
	}
}
