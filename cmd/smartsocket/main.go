package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/impldream/smart-socket/config"
	"github.com/impldream/smart-socket/handler"
	"github.com/impldream/smart-socket/internal/server"
	"github.com/impldream/smart-socket/protocol/http1"
	"github.com/impldream/smart-socket/transport"
	"github.com/sirupsen/logrus"
)

func loadConfig(path string) (*config.Config, error) {
	if len(path) == 0 {
		return config.Default(), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return config.Load(file)
}

func main() {
	addr := flag.String("addr", ":8080", "address to listen on")
	configPath := flag.String("config", "", "path to a JSON config, defaults are used if empty")
	eventLoop := flag.Bool("eventloop", false, "serve connections by event loops instead of goroutines")
	debug := flag.Bool("debug", false, "log every connection and request")
	flag.Parse()

	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *debug {
		log.SetLevel(logrus.DebugLevel)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.WithError(err).Fatal("cannot load config")
	}

	chain := handler.LogRequests(handler.NewChain(handler.HostCheck, handler.Echo), log)
	srv := server.New(http1.NewParser(cfg), chain, log, nil)

	var t transport.Transport = transport.NewTCP()
	if *eventLoop {
		t = transport.NewEventLoop(log)
	}

	sup := transport.NewSupervisor(log)
	if err = sup.Add(*addr, t, srv); err != nil {
		log.WithError(err).Fatal("cannot bind")
	}

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		log.Info("shutting down")
		sup.Stop()
	}()

	log.WithField("addr", *addr).Info("running")
	if err = sup.Run(cfg.NET); err != nil {
		log.WithError(err).Error("transport failed")
	}

	srv.Wait()
}
