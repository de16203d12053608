// Package mockbackend is an in-memory implementation of the showroom REST
// backend for development and tests.
//
// Every endpoint under /api supports list, get, create, update and delete.
// Ids are assigned by the server. Product list and mapping fields sent as
// JSON strings are stored as native JSON and returned that way.
package mockbackend

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/voltrak-labs/showroom/pkg/api"
)

// Endpoints served by New.
var Endpoints = []string{
	api.EndpointProducts,
	api.EndpointQnA,
	api.EndpointAwards,
	api.EndpointMedia,
	api.EndpointRequests,
	api.EndpointApply,
	api.EndpointBlogs,
	api.EndpointSubscribe,
}

// productComposites are stored decoded when they arrive as JSON strings.
var productComposites = []string{"image_urls", "related_products_ids", "specifications"}

// Record is one stored object.
type Record map[string]json.RawMessage

type collection struct {
	nextID  int64
	order   []int64
	records map[int64]Record
}

func newCollection() *collection {
	return &collection{nextID: 1, records: make(map[int64]Record)}
}

func (c *collection) insert(r Record) int64 {
	id := c.nextID
	c.nextID++
	r["id"] = json.RawMessage(strconv.FormatInt(id, 10))
	c.records[id] = r
	c.order = append(c.order, id)
	return id
}

func (c *collection) remove(id int64) bool {
	if _, ok := c.records[id]; !ok {
		return false
	}
	delete(c.records, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

func (c *collection) list() []Record {
	out := make([]Record, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.records[id])
	}
	return out
}

type failure struct {
	status  int
	message string
	raw     string
}

// Server is the in-memory backend.
type Server struct {
	mu          sync.Mutex
	collections map[string]*collection
	fail        []failure
	engine      *gin.Engine
}

// Option configures a Server.
type Option func(*options)

type options struct {
	logWriter io.Writer
}

// WithRequestLog writes one access log line per request to w.
func WithRequestLog(w io.Writer) Option {
	return func(o *options) { o.logWriter = w }
}

// New creates an empty server.
func New(opts ...Option) *Server {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	s := &Server{collections: make(map[string]*collection)}
	for _, ep := range Endpoints {
		s.collections[ep] = newCollection()
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	if o.logWriter != nil {
		engine.Use(gin.LoggerWithWriter(o.logWriter))
	}
	engine.Use(s.injectFailure)

	group := engine.Group(api.PathPrefix)
	for _, ep := range Endpoints {
		s.routes(group, ep)
	}
	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Not found"})
	})

	s.engine = engine
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes(group *gin.RouterGroup, endpoint string) {
	h := &handlers{server: s, endpoint: endpoint}
	group.GET("/"+endpoint, h.list)
	group.GET("/"+endpoint+"/:id", h.get)
	group.POST("/"+endpoint, h.create)
	group.PUT("/"+endpoint+"/:id", h.update)
	group.DELETE("/"+endpoint+"/:id", h.delete)
}

// FailNext makes the next request fail with status and a {"error": message}
// body.
func (s *Server) FailNext(status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = append(s.fail, failure{status: status, message: message})
}

// FailNextRaw makes the next request fail with status and a non-JSON body.
func (s *Server) FailNextRaw(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = append(s.fail, failure{status: status, raw: body})
}

func (s *Server) injectFailure(c *gin.Context) {
	s.mu.Lock()
	if len(s.fail) == 0 {
		s.mu.Unlock()
		c.Next()
		return
	}
	f := s.fail[0]
	s.fail = s.fail[1:]
	s.mu.Unlock()

	if f.raw != "" {
		c.Data(f.status, "text/html; charset=utf-8", []byte(f.raw))
	} else {
		c.JSON(f.status, api.ErrorResponse{Error: f.message})
	}
	c.Abort()
}

// Seed stores records in endpoint's collection, assigning ids. Values are
// marshalled to JSON objects first.
func (s *Server) Seed(endpoint string, values ...interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	coll, ok := s.collections[endpoint]
	if !ok {
		return fmt.Errorf("unknown endpoint: %s", endpoint)
	}
	for _, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("seed %s: %w", endpoint, err)
		}
		rec, err := decodeRecord(endpoint, data)
		if err != nil {
			return fmt.Errorf("seed %s: %w", endpoint, err)
		}
		coll.insert(rec)
	}
	return nil
}

// Records returns a copy of endpoint's records in insertion order.
func (s *Server) Records(endpoint string) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	coll, ok := s.collections[endpoint]
	if !ok {
		return nil
	}
	out := coll.list()
	for i, r := range out {
		cp := make(Record, len(r))
		for k, v := range r {
			cp[k] = v
		}
		out[i] = cp
	}
	return out
}

// Len returns the number of records stored under endpoint.
func (s *Server) Len(endpoint string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if coll, ok := s.collections[endpoint]; ok {
		return len(coll.order)
	}
	return 0
}

// decodeRecord parses a JSON object. For products, composite fields given as
// JSON strings are replaced by the JSON they contain; strings that are not
// valid JSON are kept as is.
func decodeRecord(endpoint string, data []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("expected a JSON object")
	}
	delete(rec, "id")

	if endpoint != api.EndpointProducts {
		return rec, nil
	}
	for _, field := range productComposites {
		raw, ok := rec[field]
		if !ok {
			continue
		}
		var s string
		if json.Unmarshal(raw, &s) != nil {
			continue
		}
		if json.Valid([]byte(s)) {
			rec[field] = json.RawMessage(s)
		}
	}
	return rec, nil
}
