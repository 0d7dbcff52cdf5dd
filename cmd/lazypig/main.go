package main

import (
	"context"
	"flag"
	"github.com/ZamarianPatrick/lazypig-controller/sensors"
	"github.com/ZamarianPatrick/lazypig-controller/station"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	settingsPath := flag.String("settings", "stationSettings.yml", "station settings file")
	fake := flag.Bool("fake", false, "simulate the moisture sensor and the pump")
	input := flag.String("input", "", "command stream, e.g. a serial device (default stdin)")
	flag.Parse()

	settings, err := sensors.LoadStationSettings(*settingsPath)
	if err != nil {
		log.Fatalln("settings:", err)
	}

	var in io.Reader = os.Stdin
	if *input != "" {
		f, err := os.Open(*input)
		if err != nil {
			log.Fatalln("input:", err)
		}
		defer f.Close()
		in = f
	}

	c, err := station.NewController(settings, *fake)
	if err != nil {
		log.Fatalln("station:", err)
	}
	defer c.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	interval := time.Duration(settings.TickIntervalMs) * time.Millisecond
	if err := c.Run(ctx, in, interval); err != nil {
		log.Println("shutdown:", err)
	}
	log.Println("pump off, bye")
}
