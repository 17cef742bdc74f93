package server

import (
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":  "healthy",
		"version": "1.0.0",
		"service": "paper-trader",
	}

	s.writeJSON(w, http.StatusOK, response)
}

// handleSystemStatus handles system status requests
func (s *Server) handleSystemStatus(w http.ResponseWriter, r *http.Request) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := map[string]interface{}{
		"status":         "running",
		"uptime_seconds": int64(time.Since(s.started).Seconds()),
		"goroutines":     runtime.NumGoroutine(),
		"process_memory": map[string]interface{}{
			"alloc_mb": m.Alloc / 1024 / 1024,
			"sys_mb":   m.Sys / 1024 / 1024,
			"num_gc":   m.NumGC,
		},
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		response["host_memory"] = map[string]interface{}{
			"total_mb":     vm.Total / 1024 / 1024,
			"used_percent": vm.UsedPercent,
		}
	}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		response["cpu_percent"] = percents[0]
	}

	s.writeJSON(w, http.StatusOK, response)
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
