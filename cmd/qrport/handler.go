package main

import (
	"net"

	"qrport/internal/request"
	"qrport/internal/server"
)

const notFoundMessage = "file not available"

// serveFile answers every request with the file at path, whatever path the
// client asked for.
func serveFile(path string) server.Handler {
	return func(req *request.Request) {
		if err := req.SendFile(path); err != nil {
			req.Logger.Error().Err(err).Msg("could not send file")
			if err := req.NotFound(notFoundMessage); err != nil {
				req.Logger.Error().Err(err).Msg("could not send 404")
			}
			return
		}

		addr, err := req.PeerAddr()
		if err != nil {
			req.Logger.Warn().Err(err).Msg("file sent to unknown peer")
			return
		}
		peer := addr.String()
		if host, _, err := net.SplitHostPort(peer); err == nil {
			peer = host
		}
		req.Logger.Info().Str("peer", peer).Msg("file sent")
	}
}
