package main

import (
	"context"
	"sync"

	"speedsense/controller"
	"speedsense/models"
	"speedsense/services/motion"
	"speedsense/services/telemetry"
	"speedsense/utils"
	"speedsense/views"
)

// pipeline is the logger side shared by record and live.
type pipeline struct {
	queue   *utils.MainQueue
	source  motion.Source
	session *controller.Session
	sensors *controller.SensorsController

	wg       sync.WaitGroup
	teardown []func()
}

func newSource(cfg *utils.SensorsConfig) motion.Source {
	if cfg.Motion.Source == utils.SourceSerial {
		return motion.NewSerialSource(cfg.Motion, nil)
	}
	return motion.NewSimulatedSource(cfg.Simulation.Seed)
}

// buildPipeline assembles the main queue, motion source, session and live
// controller, and attaches the configured display surfaces.
//
//	motion source ──► handler ──► MainQueue ──► rolling buffers ──► LiveHub / MQTT
//	                                        └─► recording buffers
func buildPipeline(ctx context.Context, sensorsCfg *utils.SensorsConfig, networkCfg *utils.NetworkConfig) *pipeline {
	p := &pipeline{
		queue:   utils.NewMainQueue(),
		source:  newSource(sensorsCfg),
		session: controller.NewSession(sensorsCfg.Motion.LiveCapacity),
	}
	p.queue.Start(context.Background())
	p.sensors = controller.NewSensorsController(p.source, p.session, p.queue, sensorsCfg.Motion.UpdateInterval())

	if addr := networkCfg.Live.ListenAddr; addr != "" {
		hub := views.NewLiveHub()
		p.sensors.AddSink(hub)
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			if err := hub.Run(ctx, addr); err != nil {
				utils.L().Error("live hub: %v", err)
			}
		}()
	}

	if networkCfg.Telemetry.Enabled {
		client, err := telemetry.Connect(networkCfg.Telemetry)
		if err != nil {
			utils.L().Warn("telemetry disabled: %v", err)
		} else {
			p.sensors.AddSink(telemetry.NewMQTTPublisher(client, networkCfg.Telemetry.TopicPrefix))
			p.teardown = append(p.teardown, func() { client.Disconnect(250) })
		}
	}
	return p
}

func (p *pipeline) logStats() {
	switch src := p.source.(type) {
	case *motion.SimulatedSource:
		utils.L().Info("  motion   produced=%d", src.Stats())
	case *motion.SerialSource:
		prod, drop := src.Stats()
		utils.L().Info("  motion   produced=%d  dropped=%d", prod, drop)
	}
	counts := p.session.RecordedCounts()
	utils.L().Info("  recorded accelerometer=%d  gyroscope=%d",
		counts[models.Accelerometer], counts[models.Gyroscope])
}

// close stops live updates, waits for the display servers and drains the
// main queue. The ctx given to buildPipeline must already be done.
func (p *pipeline) close() {
	p.sensors.StopAll()
	p.wg.Wait()
	for _, fn := range p.teardown {
		fn()
	}
	p.queue.Stop()
}
