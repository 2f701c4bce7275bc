package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// LiveServer é o hub de websocket por salão.
type LiveServer interface {
	Serve(w http.ResponseWriter, r *http.Request, salonID uint)
}

type LiveHandler struct {
	hub LiveServer
}

func NewLiveHandler(hub LiveServer) *LiveHandler {
	return &LiveHandler{hub: hub}
}

// Stream mantém a conexão aberta até o painel sair.
func (h *LiveHandler) Stream(c *gin.Context) {
	h.hub.Serve(c.Writer, c.Request, salonID(c))
}
