// Package server is the storefront HTTP surface: the scene-asset proxy, the
// cart/checkout JSON endpoints over the local store, and the admin order view
// behind the basic-auth gate.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"armoury-showroom/internal/catalog"
	"armoury-showroom/internal/checkout"
	"armoury-showroom/internal/store"
)

// Server bundles the injected dependencies; handlers hang off it the way the
// rest of this codebase passes stores around instead of reaching for globals.
type Server struct {
	log    *logrus.Logger
	cart   *store.Cart
	orders *store.Orders

	upstreamGLB   string
	adminPassword string
	httpClient    *http.Client
}

// New wires a server. adminPassword empty means every /admin request is
// rejected. upstreamGLB is the origin the asset proxy streams from.
func New(log *logrus.Logger, cart *store.Cart, orders *store.Orders, upstreamGLB, adminPassword string) *Server {
	return &Server{
		log:           log,
		cart:          cart,
		orders:        orders,
		upstreamGLB:   upstreamGLB,
		adminPassword: adminPassword,
		httpClient:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Handler builds the route table and middleware chain.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/api/armoury.glb", s.sceneAssetHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/products", s.productsHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/cart", s.viewCartHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/cart", s.addToCartHandler).Methods(http.MethodPost)
	r.HandleFunc("/api/cart/empty", s.emptyCartHandler).Methods(http.MethodPost)
	r.HandleFunc("/api/cart/{id}", s.removeFromCartHandler).Methods(http.MethodDelete)
	r.HandleFunc("/api/checkout", s.placeOrderHandler).Methods(http.MethodPost)
	r.HandleFunc("/admin/orders", s.adminOrdersHandler).Methods(http.MethodGet)
	r.HandleFunc("/admin/orders/{id}/status", s.adminSetStatusHandler).Methods(http.MethodPost)
	r.HandleFunc("/admin/orders/{id}", s.adminDeleteOrderHandler).Methods(http.MethodDelete)
	r.HandleFunc("/_healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	var handler http.Handler = r
	handler = s.adminGate(handler) // reject before any routing side effects
	handler = &logHandler{log: s.log, next: handler}
	return handler
}

func (s *Server) productsHandler(w http.ResponseWriter, r *http.Request) {
	products := make(map[string]catalog.Product)
	for _, key := range catalog.Keys() {
		p, _ := catalog.ByObjectKey(key)
		products[key] = p
	}
	writeJSON(w, http.StatusOK, products)
}

func (s *Server) viewCartHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items": s.cart.Items(),
		"count": s.cart.Count(),
		"total": checkout.Total(s.cart.Items()),
	})
}

func (s *Server) addToCartHandler(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r)
	var req struct {
		ObjectKey string `json:"objectKey"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(log, w, errors.Wrap(err, "decode add-to-cart request"), http.StatusBadRequest)
		return
	}
	p, ok := catalog.ByObjectKey(req.ObjectKey)
	if !ok {
		renderError(log, w, errors.Errorf("no product for object %q", req.ObjectKey), http.StatusNotFound)
		return
	}
	item := store.CartItem{ID: p.ID, Title: p.Title, Price: p.Price, ObjectKey: req.ObjectKey}
	if err := s.cart.Add(item); err != nil {
		renderError(log, w, errors.Wrap(err, "add to cart"), http.StatusInternalServerError)
		return
	}
	log.WithField("product", p.ID).Info("added to cart")
	writeJSON(w, http.StatusOK, map[string]int{"count": s.cart.Count()})
}

func (s *Server) removeFromCartHandler(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r)
	id := mux.Vars(r)["id"]
	if err := s.cart.Remove(id); err != nil {
		renderError(log, w, errors.Wrap(err, "remove from cart"), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": s.cart.Count()})
}

func (s *Server) emptyCartHandler(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r)
	if err := s.cart.Clear(); err != nil {
		renderError(log, w, errors.Wrap(err, "empty cart"), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": 0})
}

func (s *Server) placeOrderHandler(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r)
	var form checkout.Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		renderError(log, w, errors.Wrap(err, "decode checkout request"), http.StatusBadRequest)
		return
	}
	order, err := checkout.Submit(s.cart, s.orders, form)
	if err != nil {
		var ve *checkout.ValidationError
		if errors.As(err, &ve) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": ve.Message})
			return
		}
		renderError(log, w, errors.Wrap(err, "place order"), http.StatusInternalServerError)
		return
	}
	log.WithField("order", order.ID).Info("order placed")
	writeJSON(w, http.StatusCreated, order)
}

func (s *Server) adminOrdersHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"orders": s.orders.List(),
		"stats":  s.orders.Stats(),
	})
}

func (s *Server) adminSetStatusHandler(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r)
	id := mux.Vars(r)["id"]
	var req struct {
		Status store.Status `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(log, w, errors.Wrap(err, "decode status request"), http.StatusBadRequest)
		return
	}
	if err := s.orders.SetStatus(id, req.Status); err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, store.ErrOrderNotFound) {
			code = http.StatusNotFound
		} else if !store.ValidStatus(req.Status) {
			code = http.StatusBadRequest
		}
		renderError(log, w, errors.Wrap(err, "set order status"), code)
		return
	}
	log.WithFields(logrus.Fields{"order": id, "status": req.Status}).Info("order status changed")
	writeJSON(w, http.StatusOK, map[string]string{"id": id, "status": string(req.Status)})
}

func (s *Server) adminDeleteOrderHandler(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r)
	id := mux.Vars(r)["id"]
	if err := s.orders.Delete(id); err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, store.ErrOrderNotFound) {
			code = http.StatusNotFound
		}
		renderError(log, w, errors.Wrap(err, "delete order"), code)
		return
	}
	log.WithField("order", id).Info("order deleted")
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func renderError(log logrus.FieldLogger, w http.ResponseWriter, err error, code int) {
	log.WithField("error", err).Error("request failed")
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
