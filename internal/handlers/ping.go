package handlers

import (
	"fmt"
	"net/http"
)

// PingHandler проверяет готовность сервиса.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "invalid method, only GET is allowed", http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}
