// Command showroom runs the storefront HTTP server: the scene-asset proxy,
// the cart/checkout API over the local store, and the admin order view behind
// the basic-auth gate.
package main

import (
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"armoury-showroom/internal/config"
	"armoury-showroom/internal/env"
	"armoury-showroom/internal/server"
	"armoury-showroom/internal/store"
)

func main() {
	log := logrus.New()
	log.Level = logrus.DebugLevel
	log.Formatter = &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "severity",
			logrus.FieldKeyMsg:   "message",
		},
		TimestampFormat: time.RFC3339Nano,
	}
	log.Out = os.Stdout

	if err := env.Load(".env"); err != nil {
		log.WithError(err).Warn("could not read .env")
	}
	cfg := config.Load()
	if cfg.AdminPassword == "" {
		log.Warn("ADMIN_PASSWORD not set; admin area will reject all requests")
	}

	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{}, propagation.Baggage{}))
	tp := sdktrace.NewTracerProvider(sdktrace.WithSampler(sdktrace.AlwaysSample()))
	otel.SetTracerProvider(tp)

	ls, err := store.NewLocalStore(cfg.DataDir, log)
	if err != nil {
		log.WithError(err).Fatal("open local store")
	}
	cart := store.NewCart(ls)
	orders := store.NewOrders(ls)

	svc := server.New(log, cart, orders, cfg.UpstreamGLB, cfg.AdminPassword)

	var handler http.Handler = svc.Handler()
	handler = otelhttp.NewHandler(handler, "showroom")

	addr := cfg.ListenAddr + ":" + cfg.Port
	log.Infof("starting server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
