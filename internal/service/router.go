package service

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"splitledger/internal/auth"
	"splitledger/internal/middleware"
	"splitledger/internal/storage"
	"splitledger/pkg/metrics"
)

// Services bundles the handler groups mounted by the router.
type Services struct {
	Auth     *AuthService
	Groups   *GroupService
	Expenses *ExpenseService
	Payments *PaymentService
	PDF      *PDFService
}

// NewRouter wires every route. Signup, login, health and metrics are public;
// everything else sits behind token authentication.
func NewRouter(store storage.Store, jwt *auth.JWTManager, m *metrics.HTTP, svc Services) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Logging, middleware.Metrics(m), middleware.CORS)

	r.HandleFunc("/signup", svc.Auth.Signup).Methods(http.MethodPost)
	r.HandleFunc("/login", svc.Auth.Login).Methods(http.MethodPost)
	r.HandleFunc("/healthz", healthHandler(store)).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	protected := r.NewRoute().Subrouter()
	protected.Use(middleware.RequireAuth(jwt))

	protected.HandleFunc("/group", svc.Groups.Create).Methods(http.MethodPost)
	protected.HandleFunc("/groups", svc.Groups.List).Methods(http.MethodGet)

	protected.HandleFunc("/expense", svc.Expenses.Create).Methods(http.MethodPost)
	protected.HandleFunc("/group-expense", svc.Expenses.CreateBatch).Methods(http.MethodPost)
	protected.HandleFunc("/reminder/{expenseId}/{toEmail}", svc.Expenses.Remind).Methods(http.MethodPost)
	protected.HandleFunc("/user/expenses", svc.Expenses.UserExpenses).Methods(http.MethodGet)
	protected.HandleFunc("/user/created-expenses", svc.Expenses.CreatedExpenses).Methods(http.MethodGet)
	protected.HandleFunc("/fix-expenses", svc.Expenses.FixExpenses).Methods(http.MethodPost)
	protected.HandleFunc("/debug", svc.Expenses.Debug).Methods(http.MethodGet)

	protected.HandleFunc("/payment", svc.Payments.Create).Methods(http.MethodPost)
	protected.HandleFunc("/generate-pdf", svc.PDF.Generate).Methods(http.MethodPost)

	return r
}

func healthHandler(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "backend": store.Name()})
	}
}
