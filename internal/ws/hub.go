// Package ws expone un hub de websockets para alertas de stock en tiempo real.
package ws

import (
	"encoding/json"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/pkg/logger"
)

// StockAlert mensaje publicado cuando cambia el estado de stock de un registro.
type StockAlert struct {
	Type        string    `json:"type"` // siempre "stock_alert"
	RecordID    string    `json:"record_id"`
	ProductID   string    `json:"product_id"`
	SKU         string    `json:"sku"`
	ProductName string    `json:"product_name"`
	WarehouseID string    `json:"warehouse_id"`
	Stock       int64     `json:"stock"`
	Status      string    `json:"status"` // in-stock, low-stock, out-of-stock, overstock
	At          time.Time `json:"at"`
}

// Hub mantiene las conexiones websocket activas y reparte los mensajes.
type Hub struct {
	clients    map[*websocket.Conn]bool
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	broadcast  chan []byte
	log        *logger.Logger
}

// NewHub construye el hub; Run debe ejecutarse en su propia goroutine.
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]bool),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		broadcast:  make(chan []byte, 64),
		log:        log,
	}
}

// Run bucle principal del hub: altas, bajas y difusión.
func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.clients[conn] = true
			h.log.Debug().Msg("cliente websocket conectado")

		case conn := <-h.unregister:
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}

		case message := <-h.broadcast:
			for conn := range h.clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.clients, conn)
				}
			}
		}
	}
}

// Register registra una conexión nueva.
func (h *Hub) Register(conn *websocket.Conn) {
	h.register <- conn
}

// Unregister da de baja una conexión.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.unregister <- conn
}

// BroadcastStockStatus publica el estado de stock de un registro a todos los
// clientes conectados. Solo alerta estados que requieren atención.
func (h *Hub) BroadcastStockStatus(rec *entity.InventoryRecord, status entity.StockStatus) {
	if rec == nil {
		return
	}
	if status == entity.StockInStock {
		return
	}
	alert := StockAlert{
		Type:        "stock_alert",
		RecordID:    rec.ID,
		ProductID:   rec.ProductID,
		SKU:         rec.SKU,
		ProductName: rec.ProductName,
		WarehouseID: rec.WarehouseID,
		Stock:       rec.CurrentStock,
		Status:      string(status),
		At:          time.Now(),
	}
	payload, err := json.Marshal(alert)
	if err != nil {
		h.log.Error().Err(err).Msg("no se pudo serializar la alerta de stock")
		return
	}
	select {
	case h.broadcast <- payload:
	default:
		h.log.Warn().Msg("canal de difusión lleno, alerta descartada")
	}
}
