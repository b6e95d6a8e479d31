// Package spendwise implements the personal-finance application the
// regression suite drives: credential login plus CRUD for categories,
// wallets, transactions and budgets over server-rendered pages. Every
// mutation responds with one or more confirmation modals the suite has
// to dismiss, reproducing the dialog chains of the production UI.
package spendwise

import (
	"crypto/rand"
	"encoding/hex"
	"html/template"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/spendwise/spendwise-e2e/internal/errs"
	"github.com/spendwise/spendwise-e2e/internal/obs"
)

const SessionCookieName = "spendwise_session"

var logger = obs.Pkg("spendwise")

// Options configures the application.
type Options struct {
	Username string
	Password string

	// Exporter enables the CSV export surface when non-nil.
	Exporter *Exporter

	// LoginRPS/LoginBurst bound login attempts. Zero values get
	// defaults generous enough for test runs.
	LoginRPS   float64
	LoginBurst int
}

// App is the SpendWise application under test.
type App struct {
	store    *Store
	exporter *Exporter
	tmpl     *template.Template

	username     string
	passwordHash []byte
	limiter      *rate.Limiter

	mu       sync.Mutex
	sessions map[string]string // token → username
}

// NewApp wires the application against a store.
func NewApp(store *Store, opts Options) (*App, error) {
	if opts.Username == "" || opts.Password == "" {
		return nil, errs.New(errs.InvalidArgument, "app credentials must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.MinCost)
	if err != nil {
		return nil, errs.Wrap(errs.Internal, "hash app password", err)
	}
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, errs.Wrap(errs.Internal, "parse templates", err)
	}
	rps := opts.LoginRPS
	if rps == 0 {
		rps = 50
	}
	burst := opts.LoginBurst
	if burst == 0 {
		burst = 100
	}
	return &App{
		store:        store,
		exporter:     opts.Exporter,
		tmpl:         tmpl,
		username:     opts.Username,
		passwordHash: hash,
		limiter:      rate.NewLimiter(rate.Limit(rps), burst),
		sessions:     make(map[string]string),
	}, nil
}

// RegisterRoutes mounts all application routes on mux.
func (a *App) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /login", a.handleLoginPage)
	mux.HandleFunc("POST /login", a.handleLogin)
	mux.HandleFunc("GET /logout", a.handleLogout)

	mux.Handle("GET /{$}", a.requireAuth(a.handleDashboard))
	mux.Handle("POST /export", a.requireAuth(a.handleExport))

	mux.Handle("GET /categories", a.requireAuth(a.handleCategories))
	mux.Handle("POST /categories", a.requireAuth(a.handleCategoryCreate))
	mux.Handle("GET /categories/{id}/edit", a.requireAuth(a.handleCategoryEditPage))
	mux.Handle("POST /categories/{id}", a.requireAuth(a.handleCategoryUpdate))
	mux.Handle("POST /categories/{id}/delete", a.requireAuth(a.handleCategoryDelete))

	mux.Handle("GET /wallets", a.requireAuth(a.handleWallets))
	mux.Handle("POST /wallets", a.requireAuth(a.handleWalletCreate))
	mux.Handle("GET /wallets/{id}/edit", a.requireAuth(a.handleWalletEditPage))
	mux.Handle("POST /wallets/{id}", a.requireAuth(a.handleWalletUpdate))
	mux.Handle("POST /wallets/{id}/delete", a.requireAuth(a.handleWalletDelete))

	mux.Handle("GET /transactions", a.requireAuth(a.handleTransactions))
	mux.Handle("POST /transactions", a.requireAuth(a.handleTransactionCreate))
	mux.Handle("GET /transactions/{id}/edit", a.requireAuth(a.handleTransactionEditPage))
	mux.Handle("POST /transactions/{id}", a.requireAuth(a.handleTransactionUpdate))
	mux.Handle("POST /transactions/{id}/delete", a.requireAuth(a.handleTransactionDelete))

	mux.Handle("GET /budgets", a.requireAuth(a.handleBudgets))
	mux.Handle("POST /budgets", a.requireAuth(a.handleBudgetCreate))
	mux.Handle("GET /budgets/{id}/edit", a.requireAuth(a.handleBudgetEditPage))
	mux.Handle("POST /budgets/{id}", a.requireAuth(a.handleBudgetUpdate))
	mux.Handle("POST /budgets/{id}/delete", a.requireAuth(a.handleBudgetDelete))
}

// =============================================================================
// Auth
// =============================================================================

func (a *App) requireAuth(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || !a.sessionValid(cookie.Value) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r)
	})
}

func (a *App) sessionValid(token string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.sessions[token]
	return ok
}

func (a *App) newSession() string {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		panic("session token entropy unavailable: " + err.Error())
	}
	token := hex.EncodeToString(raw)
	a.mu.Lock()
	a.sessions[token] = a.username
	a.mu.Unlock()
	return token
}

type loginView struct {
	baseView
	LoginError string
}

func (a *App) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	a.render(w, "login", &loginView{baseView: baseView{Title: "Sign in"}})
}

func (a *App) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !a.limiter.Allow() {
		w.WriteHeader(http.StatusTooManyRequests)
		a.render(w, "login", &loginView{
			baseView:   baseView{Title: "Sign in"},
			LoginError: "Too many attempts, try again later",
		})
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	if email != a.username ||
		bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)) != nil {
		logger.Warn("login rejected", "email", email)
		w.WriteHeader(http.StatusUnauthorized)
		a.render(w, "login", &loginView{
			baseView:   baseView{Title: "Sign in"},
			LoginError: "Invalid email or password",
		})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    a.newSession(),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (a *App) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		a.mu.Lock()
		delete(a.sessions, cookie.Value)
		a.mu.Unlock()
	}
	http.SetCookie(w, &http.Cookie{Name: SessionCookieName, Value: "", Path: "/", MaxAge: -1})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// =============================================================================
// Views
// =============================================================================

type baseView struct {
	Title  string
	Authed bool
	Modals []string
}

// modalsFor maps the post-mutation flash parameter to the dialog chain
// the page renders. Deletion shows two sequential dialogs, matching the
// production UI's confirm-then-recalculate chain.
func modalsFor(r *http.Request) []string {
	switch r.URL.Query().Get("m") {
	case "saved":
		return []string{"Saved successfully"}
	case "deleted":
		return []string{"Deleted successfully", "Balances recalculated"}
	default:
		return nil
	}
}

func (a *App) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.tmpl.ExecuteTemplate(w, name, data); err != nil {
		logger.Error("render failed", "template", name, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (a *App) renderError(w http.ResponseWriter, err error) {
	logger.Error("request failed", "error", err, "code", errs.CodeOf(err))
	status := http.StatusInternalServerError
	if errs.CodeOf(err) == errs.InvalidArgument {
		status = http.StatusBadRequest
	}
	http.Error(w, errs.MessageOf(err), status)
}

type dashboardView struct {
	baseView
	CategoryCount    int
	WalletCount      int
	TransactionCount int
	BudgetCount      int
	CanExport        bool
}

func (a *App) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	categories, err := a.store.ListCategories(ctx)
	if err != nil {
		a.renderError(w, err)
		return
	}
	wallets, err := a.store.ListWallets(ctx)
	if err != nil {
		a.renderError(w, err)
		return
	}
	txns, err := a.store.ListTransactions(ctx)
	if err != nil {
		a.renderError(w, err)
		return
	}
	budgets, err := a.store.ListBudgets(ctx)
	if err != nil {
		a.renderError(w, err)
		return
	}
	a.render(w, "dashboard", &dashboardView{
		baseView:         baseView{Title: "Dashboard", Authed: true},
		CategoryCount:    len(categories),
		WalletCount:      len(wallets),
		TransactionCount: len(txns),
		BudgetCount:      len(budgets),
		CanExport:        a.exporter != nil,
	})
}

type exportView struct {
	baseView
	ExportURL string
}

func (a *App) handleExport(w http.ResponseWriter, r *http.Request) {
	if a.exporter == nil {
		http.Error(w, "Export is not configured", http.StatusNotFound)
		return
	}
	txns, err := a.store.ListTransactions(r.Context())
	if err != nil {
		a.renderError(w, err)
		return
	}
	url, err := a.exporter.ExportCSV(r.Context(), txns)
	if err != nil {
		a.renderError(w, err)
		return
	}
	a.render(w, "export", &exportView{
		baseView:  baseView{Title: "Export", Authed: true},
		ExportURL: url,
	})
}
