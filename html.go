/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Seednode/feud/internal/assets"
	"github.com/Seednode/feud/internal/history"
	"github.com/dustin/go-humanize"
	"github.com/julienschmidt/httprouter"
)

const historyLimit = 50

func serveHomePage(cfg *Config) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		securityHeaders(cfg, w)

		_, _ = io.WriteString(w, newPage("Feud", "Start a new game", cfg.prefix+"/feud"))
	}
}

func serveHealthCheck(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		securityHeaders(cfg, w)

		_, err := w.Write([]byte("Ok\n"))
		if err != nil {
			errs <- err

			return
		}
	}
}

// serveSounds sends cue files found by the resolver. Names never contain a
// path, so nothing outside the asset directories can be reached.
func serveSounds(cfg *Config, resolver *assets.Resolver, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		startTime := time.Now()

		name := p.ByName("name")
		if !strings.HasSuffix(strings.ToLower(name), ".mp3") {
			http.NotFound(w, r)

			return
		}

		path, ok := resolver.Resolve(name)
		if !ok {
			logf(cfg, "AUDIO: Sound %q not found in %s", name, strings.Join(resolver.Dirs(), ", "))
			http.NotFound(w, r)

			return
		}

		data, err := os.ReadFile(path)
		if err != nil {
			logf(cfg, "AUDIO: Sound %q unreadable: %v", path, err)
			http.NotFound(w, r)

			return
		}

		w.Header().Set("Content-Type", "audio/mpeg")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		securityHeaders(cfg, w)

		written, err := w.Write(data)
		if err != nil {
			errs <- err

			return
		}

		logf(cfg, "SERVE: Sound %s (%s) to %s in %s",
			name,
			humanize.Bytes(uint64(written)),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

// serveHistory lists the most recent final scores as JSON.
func serveHistory(cfg *Config, store *history.Store, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		limit := historyLimit
		if n, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && n > 0 && n < historyLimit {
			limit = n
		}

		results, err := store.Recent(r.Context(), limit)
		if err != nil {
			logf(cfg, "SERVE: Reading history failed: %v", err)
			http.Error(w, "history unavailable", http.StatusInternalServerError)

			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		securityHeaders(cfg, w)

		if err := json.NewEncoder(w).Encode(results); err != nil {
			errs <- err

			return
		}
	}
}

func serveRobots(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		data := `User-agent: *
Disallow: /feud/
Disallow: /sounds/
Disallow: /history`

		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		securityHeaders(cfg, w)

		_, err := w.Write([]byte(data))
		if err != nil {
			errs <- err

			return
		}
	}
}
