package main

import (
	"encoding/base64"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/junctionsim/core/clock"
	"github.com/junctionsim/core/config"
	"github.com/junctionsim/core/controller"
	"github.com/junctionsim/core/coordinator"
	"github.com/junctionsim/core/metrics"
	"github.com/junctionsim/core/randengine"
	"github.com/junctionsim/core/simulator"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

var (
	// 配置文件路径
	configPath = flag.String("config", "", "config file path")
	// 配置文件Base64编码后的数据
	configData = flag.String("config-data", "", "config file base64 encoded data")
	// 运行时长；0 表示一直运行直到收到中断信号
	runFor = flag.Duration("run-for", 0, "wall-clock duration to run before stopping (0 = run until interrupted)")

	// log
	logLevels = map[string]logrus.Level{
		"trace":    logrus.TraceLevel,
		"debug":    logrus.DebugLevel,
		"info":     logrus.InfoLevel,
		"warn":     logrus.WarnLevel,
		"error":    logrus.ErrorLevel,
		"critical": logrus.FatalLevel,
		"off":      logrus.PanicLevel,
	}
	logLevel = flag.String("log.level", "info", "日志级别（可选项：trace debug info warn error critical off）")

	log = logrus.WithField("module", "junctionsim")
)

func main() {
	flag.Parse()
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.0000",
	})
	// log: 运行时才修改
	if level, ok := logLevels[*logLevel]; ok {
		logrus.SetLevel(level)
	} else {
		log.Panicf("log.level must be one of %v", logLevels)
	}

	// 获取配置
	var c config.Config
	var file []byte
	var err error
	if *configPath != "" {
		file, err = os.ReadFile(*configPath)
		if err != nil {
			log.Panicf("config file load err: %v", err)
		}
	} else if *configData != "" {
		file, err = base64.StdEncoding.DecodeString(*configData)
		if err != nil {
			log.Panicf("config data load err: %v", err)
		}
	} else {
		log.Panic("config file or config data must be specified")
	}
	if err := yaml.UnmarshalStrict(file, &c); err != nil {
		log.Panicf("config file load err: %v", err)
	}
	rc := config.NewRuntimeConfig(c)
	log.Infof("%+v", rc.C)

	spec, err := c.Junction.ToSpec()
	if err != nil {
		log.Panicf("junction config err: %v", err)
	}

	strategy, err := controller.ParseStrategy(rc.C.Strategy)
	if err != nil {
		log.Panicf("controller strategy err: %v", err)
	}

	m := metrics.New()
	clk := clock.New(rc.C.Step.SimDT)
	rng := randengine.New(rc.C.RandomSeed)
	ctrl := controller.New(strategy, controller.DefaultTunables())
	sim := simulator.New(rc.C.Step.SimDT, rng, simulator.DefaultTunables(), m)

	coordTunables := coordinator.DefaultTunables()
	coordTunables.AmberDuration = rc.C.AmberDuration
	controlInterval := time.Duration(rc.C.Step.ControlInterval * float64(time.Second))
	coord := coordinator.New(ctrl, sim, clk, controlInterval, coordTunables, m)

	if err := coord.Build(spec); err != nil {
		log.Panicf("junction build err: %v", err)
	}
	if err := coord.Start(); err != nil {
		log.Panicf("coordinator start err: %v", err)
	}
	log.Infof("junction %d running: strategy=%s sim_dt=%.4fs control_interval=%.3fs",
		spec.ID, strategy, rc.C.Step.SimDT, rc.C.Step.ControlInterval)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var deadline <-chan time.Time
	if *runFor > 0 {
		deadline = time.After(*runFor)
	}

	select {
	case <-stop:
		log.Info("interrupt received, shutting down")
	case <-deadline:
		log.Info("run-for duration elapsed, shutting down")
	}

	coord.Stop()
	log.Info("coordinator stopped cleanly")
}
