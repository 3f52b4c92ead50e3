package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"qrport/internal/localip"
	"qrport/internal/qrterm"
	"qrport/internal/server"
)

const defaultPort = 8008

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <path>\n\nServe one file over HTTP and print a QR code linking to it.\n\nFlags:\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	var port uint
	flag.UintVar(&port, "port", defaultPort, "port to listen on")
	flag.UintVar(&port, "p", defaultPort, "shorthand for -port")
	readTimeout := flag.Duration("read-timeout", 0, "close connections that send nothing for this long (0 waits forever)")
	writeTimeout := flag.Duration("write-timeout", 0, "give up on writes that take longer than this (0 waits forever)")
	maxConns := flag.Int("max-conns", 0, "limit simultaneous connections (0 is unlimited)")
	reusePort := flag.Bool("reuseport", false, "set SO_REUSEPORT on the listening socket")
	verbose := flag.Bool("v", false, "log every request")
	flag.Usage = usage
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger().Level(zerolog.InfoLevel)
	if *verbose {
		logger = logger.Level(zerolog.DebugLevel)
	}

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}
	if port > math.MaxUint16 {
		fmt.Fprintf(os.Stderr, "invalid port %d\n", port)
		os.Exit(2)
	}
	path := flag.Arg(0)

	ip, err := localip.Discover()
	if err != nil {
		logger.Fatal().Err(err).Msg("could not find a local IP address")
	}
	url := fmt.Sprintf("http://%s:%d/%s", ip, port, filepath.Base(path))
	if err := qrterm.Render(os.Stdout, url); err != nil {
		logger.Fatal().Err(err).Msg("could not render QR code")
	}
	fmt.Println(url)

	cfg := server.Config{
		Port:         uint16(port),
		ReadTimeout:  *readTimeout,
		WriteTimeout: *writeTimeout,
		MaxConns:     *maxConns,
		ReusePort:    *reusePort,
		Logger:       &logger,
	}
	srv, err := server.Start(cfg, serveFile(path))
	if err != nil {
		logger.Fatal().Err(err).Msg("could not start server")
	}
	defer srv.Close()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	logger.Info().Msg("stopped")
}
