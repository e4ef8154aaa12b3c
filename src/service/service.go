package service

import (
	"encoding/hex"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/workpost-net/workpost/src/chain"
	"github.com/workpost-net/workpost/src/node"
)

// Service exposes read-only node and chain information over HTTP. It runs on
// its own goroutine; the node accessors take the chain lock internally.
type Service struct {
	bindAddress string
	node        *node.Node
	router      *mux.Router
	logger      *logrus.Entry
}

// NewService ...
func NewService(bindAddress string, n *node.Node, logger *logrus.Entry) *Service {
	service := Service{
		bindAddress: bindAddress,
		node:        n,
		router:      mux.NewRouter(),
		logger:      logger.WithField("component", "service"),
	}

	service.registerHandlers()

	return &service
}

func (s *Service) registerHandlers() {
	s.logger.Debug("Registering API handlers")

	s.router.HandleFunc("/stats", s.GetStats).Methods("GET")
	s.router.HandleFunc("/tip", s.GetTip).Methods("GET")
	s.router.HandleFunc("/canonical", s.GetCanonical).Methods("GET")
	s.router.HandleFunc("/post/{hash}", s.GetPost).Methods("GET")
	s.router.HandleFunc("/peers", s.GetPeers).Methods("GET")
}

// Serve calls ListenAndServe. This is a blocking call.
func (s *Service) Serve() {
	s.logger.WithField("bind_address", s.bindAddress).Debug("Serving API")

	if err := http.ListenAndServe(s.bindAddress, s.router); err != nil {
		s.logger.Error(err)
	}
}

// postJSON is the JSON rendering of a post: hex payload, hex work, parent
// hash, and the post's own content address.
type postJSON struct {
	Hash string `json:"hash"`
	Prev string `json:"prev"`
	Work string `json:"work"`
	Body string `json:"body"`
}

func renderPost(p *chain.Post) postJSON {
	body := make([]byte, 0, chain.BodySize)
	for i := 0; i < chain.BodyWords; i++ {
		body = append(body, p.Body[i][:]...)
	}

	return postJSON{
		Hash: p.Hash().String(),
		Prev: p.Prev.String(),
		Work: hex.EncodeToString(p.Work[:]),
		Body: hex.EncodeToString(body),
	}
}

// GetStats returns a snapshot of node statistics.
func (s *Service) GetStats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.node.GetStats())
}

// GetTip returns the hash and cumulative score of the current tip.
func (s *Service) GetTip(w http.ResponseWriter, r *http.Request) {
	tip, score := s.node.GetTip()
	s.writeJSON(w, map[string]string{
		"tip":   tip.String(),
		"score": score.String(),
	})
}

// GetCanonical returns the canonical chain from genesis to tip.
func (s *Service) GetCanonical(w http.ResponseWriter, r *http.Request) {
	canonical := s.node.GetCanonical()

	rendered := make([]postJSON, len(canonical))
	for i, p := range canonical {
		rendered[i] = renderPost(p)
	}
	if len(rendered) > 0 {
		// Genesis is addressed by the zero hash.
		rendered[0].Hash = chain.ZeroHash.String()
	}

	s.writeJSON(w, rendered)
}

// GetPost returns one post by hash.
func (s *Service) GetPost(w http.ResponseWriter, r *http.Request) {
	param := mux.Vars(r)["hash"]

	raw, err := hex.DecodeString(param)
	if err != nil || len(raw) != chain.HashSize {
		http.Error(w, "malformed hash", http.StatusBadRequest)
		return
	}

	post, ok := s.node.GetPost(chain.HashFromBytes(raw))
	if !ok {
		http.Error(w, "unknown post", http.StatusNotFound)
		return
	}

	s.writeJSON(w, renderPost(post))
}

// GetPeers returns the node's peer list.
func (s *Service) GetPeers(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.node.Peers())
}

func (s *Service) writeJSON(w http.ResponseWriter, v interface{}) {
	// enable CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.WithError(err).Error("Encoding response")
	}
}
