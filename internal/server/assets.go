package server

import (
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// sceneAssetHandler streams the upstream GLB unmodified with a long-lived
// immutable cache directive. The asset never changes under the same URL, so
// browsers fetch it once. Upstream failure is a plain 500 with a text body;
// the client shows its blocking error state, no retry.
func (s *Server) sceneAssetHandler(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r)

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, s.upstreamGLB, nil)
	if err != nil {
		renderAssetError(w, log, errors.Wrap(err, "build upstream request"), 0)
		return
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		renderAssetError(w, log, errors.Wrap(err, "fetch GLB"), 0)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		renderAssetError(w, log, errors.Errorf("fetch GLB: upstream status %d", resp.StatusCode), resp.StatusCode)
		return
	}

	w.Header().Set("Content-Type", "model/gltf-binary")
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	if _, err := io.Copy(w, resp.Body); err != nil {
		// Headers are gone already; all we can do is log the broken stream.
		log.WithField("error", err).Warn("GLB stream interrupted")
	}
}

func renderAssetError(w http.ResponseWriter, log logrus.FieldLogger, err error, upstreamStatus int) {
	log.Error(err)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	if upstreamStatus != 0 {
		fmt.Fprintf(w, "Failed to fetch GLB: %d", upstreamStatus)
		return
	}
	fmt.Fprint(w, "Failed to fetch GLB")
}
