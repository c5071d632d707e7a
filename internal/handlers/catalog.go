package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Classes handles GET /api/v1/classes, listing the bound catalog's classes.
func (h *Handler) Classes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	writeJSONAPIList(w, http.StatusOK, "class", h.svc.Classes())
}

// Objects handles GET /api/v1/objects, listing the bound catalog's objects.
func (h *Handler) Objects(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	writeJSONAPIList(w, http.StatusOK, "object", h.svc.Objects())
}

// ClassByUID handles GET /api/v1/classes/uid/{uid}. Both bare class UIDs
// and full type UIDs resolve.
func (h *Handler) ClassByUID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	raw := strings.TrimPrefix(r.URL.Path, "/api/v1/classes/uid/")
	uid, err := strconv.Atoi(raw)
	if err != nil || uid <= 0 {
		writeJSONAPIError(w, http.StatusBadRequest, "invalid_uid",
			"Invalid class UID", fmt.Sprintf("uid %q is not a positive integer", raw))
		return
	}

	lookup, err := h.svc.LookupUID(uid)
	if err != nil {
		writeFault(w, r, err)
		return
	}

	writeJSONAPIResource(w, http.StatusOK, "class", lookup.ClassName, lookup)
}
