package http

import (
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"

	"skillswap-backend/internal/logger"
	"skillswap-backend/internal/security"
	"skillswap-backend/internal/service"

	"github.com/gorilla/mux"
)

// canRead reports whether p may download key. Admins read everything;
// participants read profile photos and their own proofs.
func canRead(p security.Principal, key string) bool {
	switch who := p.(type) {
	case security.AdminPrincipal:
		return true
	case security.UserPrincipal:
		parts := strings.SplitN(key, "/", 3)
		if len(parts) < 3 {
			return false
		}
		if parts[0] == service.MediaProfilePhotos {
			return true
		}
		return parts[1] == strconv.Itoa(int(who.ID))
	}
	return false
}

func contentTypeFor(key string) string {
	switch strings.ToLower(path.Ext(key)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".pdf":
		return "application/pdf"
	}
	return "application/octet-stream"
}

// downloadMedia streams a stored upload.
func (s *Server) downloadMedia(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	if !canRead(security.PrincipalFrom(r.Context()), key) {
		writeError(w, r, service.ErrNotFound)
		return
	}

	rc, err := s.svc.Media.Open(r.Context(), key)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", contentTypeFor(key))
	w.Header().Set("Cache-Control", "private, max-age=3600")
	if _, err := io.Copy(w, rc); err != nil {
		logger.WarnContext(r.Context(), "Media download interrupted", "key", key, "error", err)
	}
}
