package main

import (
	"flag"
	"net"
	"os"

	"github.com/rs/zerolog"

	"qrport/internal/request"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:8008", "address to accept one connection on")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	lsnr, err := net.Listen("tcp", *addr)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not listen")
	}
	defer lsnr.Close()

	conn, err := lsnr.Accept()
	if err != nil {
		logger.Fatal().Err(err).Msg("could not accept")
	}
	logger.Info().Stringer("remote", conn.RemoteAddr()).Msg("connection accepted")

	req, err := request.Parse(conn)
	if err != nil {
		conn.Close()
		logger.Fatal().Err(err).Msg("could not read request")
	}
	defer req.Close()

	request.PrintRequest(os.Stdout, req)
}
