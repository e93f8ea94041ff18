package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"gamezone/internal/model"
	"gamezone/internal/repository"
	"gamezone/internal/service"
)

const (
	msgAuthFailed = "Authentication failed"
	msgInternal   = "Internal server error."
)

type Handler struct {
	auth       service.AuthService
	wallet     service.WalletService
	tickets    service.TicketService
	newsletter service.NewsletterService
}

func NewHandler(auth service.AuthService, wallet service.WalletService, tickets service.TicketService, newsletter service.NewsletterService) *Handler {
	return &Handler{auth: auth, wallet: wallet, tickets: tickets, newsletter: newsletter}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("POST /api/auth/login", h.Login)
	mux.HandleFunc("POST /api/auth/logout", h.requireAuth(h.Logout))
	mux.HandleFunc("GET /api/wallet/balance", h.requireAuth(h.Balance))
	mux.HandleFunc("GET /api/transaction/recent", h.requireAuth(h.RecentTransactions))
	mux.HandleFunc("GET /api/users/dashboard", h.requireAuth(h.Dashboard))
	mux.HandleFunc("POST /api/tickets/create", h.CreateSupportTicket)
	mux.HandleFunc("POST /api/tickets/purchase", h.Purchase)
	mux.HandleFunc("POST /api/tickets/confirm-payment", h.ConfirmPayment)
	mux.HandleFunc("POST /api/subscribe", h.Subscribe)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respond(w, http.StatusBadRequest, "Invalid request body.", nil)
		return
	}
	if req.Email == "" || req.Password == "" {
		h.respond(w, http.StatusBadRequest, "Email and password are required.", nil)
		return
	}

	result, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.respond(w, http.StatusUnauthorized, "Invalid email or password.", nil)
			return
		}
		slog.Error("login failed", "error", err)
		h.respond(w, http.StatusInternalServerError, msgInternal, nil)
		return
	}

	h.respond(w, http.StatusOK, "Login successful.", result)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token, _ := TokenFrom(r.Context())
	if err := h.auth.Logout(r.Context(), token); err != nil {
		slog.Error("logout failed", "error", err)
		h.respond(w, http.StatusInternalServerError, msgInternal, nil)
		return
	}
	h.respond(w, http.StatusOK, "Logged out successfully.", nil)
}

func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFrom(r.Context())
	if !ok {
		h.respond(w, http.StatusUnauthorized, msgAuthFailed, nil)
		return
	}

	balance, err := h.wallet.Balance(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.respond(w, http.StatusNotFound, "User not found.", nil)
			return
		}
		slog.Error("failed to fetch balance", "user_id", user.ID, "error", err)
		h.respond(w, http.StatusInternalServerError, msgInternal, nil)
		return
	}

	h.respond(w, http.StatusOK, "Balance fetched successfully.", map[string]any{"balance": balance})
}

func (h *Handler) RecentTransactions(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFrom(r.Context())
	if !ok {
		h.respond(w, http.StatusUnauthorized, msgAuthFailed, nil)
		return
	}

	txs, err := h.wallet.RecentTransactions(r.Context(), user.ID)
	if err != nil {
		slog.Error("failed to fetch transactions", "user_id", user.ID, "error", err)
		h.respond(w, http.StatusInternalServerError, "Failed to fetch transactions.", nil)
		return
	}
	if len(txs) == 0 {
		h.respond(w, http.StatusNotFound, "No transactions found.", nil)
		return
	}

	h.respond(w, http.StatusOK, "Transaction history fetched successfully.", map[string]any{"transactions": txs})
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFrom(r.Context())
	if !ok {
		h.respond(w, http.StatusUnauthorized, msgAuthFailed, nil)
		return
	}

	dashboard, err := h.wallet.Dashboard(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.respond(w, http.StatusNotFound, "User not found.", nil)
			return
		}
		slog.Error("failed to fetch dashboard", "user_id", user.ID, "error", err)
		h.respond(w, http.StatusInternalServerError, "Failed to fetch dashboard data.", nil)
		return
	}

	h.respond(w, http.StatusOK, "Dashboard data fetched successfully.", dashboard)
}

func (h *Handler) CreateSupportTicket(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string `json:"name"`
		Email     string `json:"email"`
		IssueType string `json:"issueType"`
		Message   string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respond(w, http.StatusBadRequest, "Invalid request body.", nil)
		return
	}

	ticket, err := h.tickets.CreateSupport(r.Context(), req.Name, req.Email, req.IssueType, req.Message)
	if err != nil {
		if errors.Is(err, service.ErrMissingFields) {
			h.respond(w, http.StatusBadRequest, "Please fill in all fields.", nil)
			return
		}
		slog.Error("failed to create support ticket", "error", err)
		h.respond(w, http.StatusInternalServerError, "Failed to create ticket. Please try again later.", nil)
		return
	}

	h.respond(w, http.StatusCreated, "Ticket created successfully!", ticket)
}

func (h *Handler) Purchase(w http.ResponseWriter, r *http.Request) {
	var req model.PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respond(w, http.StatusBadRequest, "Invalid request body.", nil)
		return
	}

	ticket, err := h.tickets.Purchase(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			h.respond(w, http.StatusBadRequest, "Please fill in all fields.", nil)
		case errors.Is(err, repository.ErrDuplicate):
			h.respond(w, http.StatusConflict, "Ticket already exists.", nil)
		default:
			slog.Error("failed to purchase ticket", "error", err)
			h.respond(w, http.StatusInternalServerError, msgInternal, nil)
		}
		return
	}

	h.respond(w, http.StatusOK, "Ticket purchased successfully", map[string]any{"ticket": ticket})
}

func (h *Handler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var req model.ConfirmPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respond(w, http.StatusBadRequest, "Invalid request body.", nil)
		return
	}

	ticket, err := h.tickets.ConfirmPayment(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			h.respond(w, http.StatusBadRequest, "Missing required fields", nil)
		case errors.Is(err, repository.ErrNotFound):
			h.respond(w, http.StatusBadRequest, "Ticket not found.", nil)
		default:
			slog.Error("failed to confirm payment", "ticket", req.Reference, "error", err)
			h.respond(w, http.StatusInternalServerError, msgInternal, nil)
		}
		return
	}

	h.respond(w, http.StatusOK, "Payment confirmed! A confirmation email has been sent.", map[string]any{"ticket": ticket})
}

func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respond(w, http.StatusBadRequest, "Invalid request body.", nil)
		return
	}

	sub, err := h.newsletter.Subscribe(r.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			h.respond(w, http.StatusBadRequest, "Email is required", nil)
		case errors.Is(err, repository.ErrDuplicate):
			h.respond(w, http.StatusBadRequest, "This email is already subscribed", nil)
		default:
			slog.Error("failed to save subscription", "error", err)
			h.respond(w, http.StatusInternalServerError, "An error occurred while subscribing. Please try again.", nil)
		}
		return
	}

	h.respond(w, http.StatusOK, "Successfully subscribed to the newsletter", sub)
}

// respond writes the { message, data } envelope used by every endpoint.
func (h *Handler) respond(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"message": message,
		"data":    data,
	})
}
