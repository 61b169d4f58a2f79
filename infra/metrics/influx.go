package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/prodplan/core/metrics"
	"github.com/kilianp07/prodplan/infra/logger"
)

// InfluxSink writes production plans to an InfluxDB instance.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a
// NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordPlan writes one production_plan point and one unit_output point per
// plant.
func (s *InfluxSink) RecordPlan(rec coremetrics.PlanRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.writeAPI.WritePoint(ctx, planPoints(rec)...)
}

// RecordPlanFailure writes a plan_failure point.
func (s *InfluxSink) RecordPlanFailure(f coremetrics.PlanFailure) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("plan_failure").
		AddTag("reason", f.Reason).
		AddField("count", 1).
		SetTime(f.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }

func planPoints(rec coremetrics.PlanRecord) []*write.Point {
	points := make([]*write.Point, 0, len(rec.Units)+1)
	points = append(points, write.NewPointWithMeasurement("production_plan").
		AddTag("plan_id", rec.PlanID).
		AddTag("feasible", strconv.FormatBool(rec.Feasible)).
		AddField("load_mw", round3(rec.Load)).
		AddField("total_mw", round3(rec.Total)).
		AddField("residual_mw", round3(rec.Residual)).
		AddField("cost_euro", round3(rec.Cost)).
		AddField("duration_ms", round3(float64(rec.Duration)/float64(time.Millisecond))).
		SetTime(rec.Time))
	for _, u := range rec.Units {
		points = append(points, write.NewPointWithMeasurement("unit_output").
			AddTag("plan_id", rec.PlanID).
			AddTag("unit", u.Name).
			AddTag("kind", u.Kind).
			AddField("output_mw", round3(u.Output)).
			AddField("capacity_mw", round3(u.Capacity)).
			AddField("marginal_cost", round3(u.MarginalCost)).
			SetTime(rec.Time))
	}
	return points
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
