package mockbackend

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/voltrak-labs/showroom/pkg/api"
)

type handlers struct {
	server   *Server
	endpoint string
}

func respondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, api.ErrorResponse{Error: message})
}

func (h *handlers) collection() *collection {
	return h.server.collections[h.endpoint]
}

func (h *handlers) id(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondWithError(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}

func (h *handlers) body(c *gin.Context) (Record, bool) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondWithError(c, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	rec, err := decodeRecord(h.endpoint, data)
	if err != nil {
		respondWithError(c, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	return rec, true
}

func (h *handlers) list(c *gin.Context) {
	h.server.mu.Lock()
	records := h.collection().list()
	h.server.mu.Unlock()
	c.JSON(http.StatusOK, records)
}

func (h *handlers) get(c *gin.Context) {
	id, ok := h.id(c)
	if !ok {
		return
	}
	h.server.mu.Lock()
	rec, found := h.collection().records[id]
	h.server.mu.Unlock()
	if !found {
		respondWithError(c, http.StatusNotFound, "Not found")
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *handlers) create(c *gin.Context) {
	rec, ok := h.body(c)
	if !ok {
		return
	}
	h.server.mu.Lock()
	h.collection().insert(rec)
	h.server.mu.Unlock()

	if h.endpoint == api.EndpointSubscribe {
		c.JSON(http.StatusCreated, gin.H{"message": "Subscribed"})
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (h *handlers) update(c *gin.Context) {
	id, ok := h.id(c)
	if !ok {
		return
	}
	rec, ok := h.body(c)
	if !ok {
		return
	}

	h.server.mu.Lock()
	defer h.server.mu.Unlock()
	if _, found := h.collection().records[id]; !found {
		respondWithError(c, http.StatusNotFound, "Not found")
		return
	}
	rec["id"] = []byte(strconv.FormatInt(id, 10))
	h.collection().records[id] = rec
	c.JSON(http.StatusOK, rec)
}

func (h *handlers) delete(c *gin.Context) {
	id, ok := h.id(c)
	if !ok {
		return
	}
	h.server.mu.Lock()
	removed := h.collection().remove(id)
	h.server.mu.Unlock()
	if !removed {
		respondWithError(c, http.StatusNotFound, "Not found")
		return
	}
	c.Status(http.StatusNoContent)
}
