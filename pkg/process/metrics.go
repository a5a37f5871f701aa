// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package process

import (
	"context"
	"flag"
	"os"
	"path/filepath"

	hw "github.com/jtolds/monkit-hw"
	"github.com/zeebo/admission/admproto"
	monkit "gopkg.in/spacemonkeygo/monkit.v2"
	"gopkg.in/spacemonkeygo/monkit.v2/environment"

	"trac.io/trac/pkg/telemetry"
)

var (
	metricInterval = flag.Duration("metrics.interval", telemetry.DefaultInterval,
		"how frequently to send up telemetry")
	metricCollector = flag.String("metrics.addr", "collectora.trac.io:9000",
		"address to send telemetry to")
	metricApp = flag.String("metrics.app", filepath.Base(os.Args[0]),
		"application name for telemetry identification")
	metricAppSuffix = flag.String("metrics.app-suffix", "-dev",
		"application suffix")
)

// initMetrics initializes telemetry reporting. Makes a telemetry.Client and
// starts it in a goroutine.
func initMetrics(ctx context.Context, r *monkit.Registry, instanceID string) (
	err error) {
	if *metricCollector == "" || *metricInterval == 0 {
		return Error.New("telemetry disabled")
	}
	c, err := telemetry.NewClient(*metricCollector, telemetry.ClientOpts{
		Interval:      *metricInterval,
		Application:   *metricApp + *metricAppSuffix,
		Instance:      instanceID,
		Registry:      r,
		FloatEncoding: admproto.Float32Encoding,
	})
	if err != nil {
		return err
	}
	environment.Register(r)
	hw.Register(r)
	go c.Run(ctx)
	return nil
}
