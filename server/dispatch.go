package server

import (
	"encoding/json"
)

// HandlerFunc is the signature for JSON-RPC method handlers
type HandlerFunc func(params json.RawMessage) (interface{}, error)

// methodRegistry maps method names to handlers. server.shutdown is handled
// separately so the response can be flushed before the listener stops.
func (s *Server) methodRegistry() map[string]HandlerFunc {
	return map[string]HandlerFunc{
		"trigger_next":     s.handleTriggerNext,
		"trigger_previous": s.handleTriggerPrevious,
		"wm_connect":       s.handleConnect,
		"status":           s.handleStatus,
	}
}

func (s *Server) handleTriggerNext(params json.RawMessage) (interface{}, error) {
	if err := s.engine.TriggerNext(); err != nil {
		return nil, err
	}
	return okResponse, nil
}

func (s *Server) handleTriggerPrevious(params json.RawMessage) (interface{}, error) {
	if err := s.engine.TriggerPrevious(); err != nil {
		return nil, err
	}
	return okResponse, nil
}

type connectParams struct {
	Force bool `json:"force"`
}

func (s *Server) handleConnect(params json.RawMessage) (interface{}, error) {
	var p connectParams
	if len(params) > 0 {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, err
		}
	}
	if err := s.engine.Connect(p.Force); err != nil {
		return nil, err
	}
	return okResponse, nil
}

func (s *Server) handleStatus(params json.RawMessage) (interface{}, error) {
	return s.engine.Status(), nil
}
