// Package stubapi is an in-memory stand-in for the storefront backend,
// implementing the REST contract the client depends on. Integration
// tests run against it, and `storefront stub` serves it for local
// development. It is not a product backend: no persistence, no real
// OTP delivery, tokens are random strings.
package stubapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/andreasstove999/storefront-client-go/internal/cart"
	"github.com/andreasstove999/storefront-client-go/internal/session"
)

type account struct {
	user     session.User
	password string
	lines    []cart.Line
}

type Server struct {
	mu       sync.Mutex
	products []cart.Product
	accounts map[string]*account // by email
	tokens   map[string]string   // token -> email
}

// New builds a stub with the given catalog, or a small fixture catalog
// when none is supplied.
func New(products ...cart.Product) *Server {
	if len(products) == 0 {
		products = []cart.Product{
			{ID: "prod-mango", Title: "Mango Box", Image: "/img/mango.jpg", Price: 4.5, Category: "fruit"},
			{ID: "prod-rice", Title: "Basmati Rice 5kg", Image: "/img/rice.jpg", Price: 12, Category: "grocery"},
			{ID: "prod-tea", Title: "Assam Tea 250g", Image: "/img/tea.jpg", Price: 3.25, Category: "grocery"},
		}
	}
	return &Server{
		products: products,
		accounts: map[string]*account{},
		tokens:   map[string]string{},
	}
}

// Register creates an account directly, bypassing the OTP steps. Handy
// for tests.
func (s *Server) Register(name, email, password string) session.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registerLocked(name, email, password)
}

func (s *Server) registerLocked(name, email, password string) session.User {
	u := session.User{ID: uuid.NewString(), Name: name, Email: email}
	s.accounts[email] = &account{user: u, password: password}
	return u
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "stub-api"})
	})

	mux.HandleFunc("POST /api/auth/request-otp", s.requestOTP)
	mux.HandleFunc("POST /api/auth/verify-otp", s.verifyOTP)
	mux.HandleFunc("POST /api/auth/register", s.register)
	mux.HandleFunc("POST /api/auth/login", s.login)
	mux.HandleFunc("GET /api/auth/me", s.me)

	mux.HandleFunc("GET /api/products", s.listProducts)
	mux.HandleFunc("GET /api/products/{productId}", s.getProduct)

	mux.HandleFunc("GET /api/user/profile", s.getProfile)
	mux.HandleFunc("PUT /api/user/profile", s.updateProfile)
	mux.HandleFunc("PUT /api/user/change-password", s.changePassword)

	mux.HandleFunc("GET /api/cart/getcart", s.getCart)
	mux.HandleFunc("POST /api/cart/addsingleproduct", s.addSingleProduct)
	mux.HandleFunc("DELETE /api/cart/removesingleitem/{productId}", s.removeSingleItem)
	mux.HandleFunc("PATCH /api/cart/updatecart/{productId}/{quantity}", s.updateCart)
	mux.HandleFunc("POST /api/cart/additemsinarray", s.addItemsInArray)
	mux.HandleFunc("DELETE /api/cart/clearcart", s.clearCart)

	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// authed resolves the bearer token to an account, or writes a 401.
func (s *Server) authed(w http.ResponseWriter, r *http.Request) *account {
	tok := bearerToken(r)
	if tok == "" {
		writeError(w, http.StatusUnauthorized, "missing token")
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	email, ok := s.tokens[tok]
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return nil
	}
	return s.accounts[email]
}

func bearerToken(r *http.Request) string {
	const prefix = "Bearer "
	h := r.Header.Get("Authorization")
	if len(h) <= len(prefix) || h[:len(prefix)] != prefix {
		return ""
	}
	return h[len(prefix):]
}

func (s *Server) requestOTP(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "otp sent"})
}

func (s *Server) verifyOTP(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.OTP == "" {
		writeError(w, http.StatusBadRequest, "otp is required")
		return
	}
	// Any code passes; this is a stub.
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "otp verified"})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" || body.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[body.Email]; exists {
		writeError(w, http.StatusConflict, "account already exists")
		return
	}
	u := s.registerLocked(body.Name, body.Email, body.Password)
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "user": u})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.accounts[body.Email]
	if !ok || acct.password != body.Password {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	tok := uuid.NewString()
	s.tokens[tok] = body.Email
	writeJSON(w, http.StatusOK, map[string]any{"user": acct.user, "token": tok})
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	acct := s.authed(w, r)
	if acct == nil {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": acct.user})
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"products": s.products})
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("productId")
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ID == id {
			writeJSON(w, http.StatusOK, map[string]any{"product": p})
			return
		}
	}
	writeError(w, http.StatusNotFound, "product not found")
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	acct := s.authed(w, r)
	if acct == nil {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": acct.user, "phone": "", "savedAddresses": []string{}})
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	acct := s.authed(w, r)
	if acct == nil {
		return
	}
	var body struct {
		User session.User `json:"user"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	s.mu.Lock()
	if body.User.Name != "" {
		acct.user.Name = body.User.Name
	}
	u := acct.user
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"user": u})
}

func (s *Server) changePassword(w http.ResponseWriter, r *http.Request) {
	acct := s.authed(w, r)
	if acct == nil {
		return
	}
	var body struct {
		Current string `json:"currentPassword"`
		Next    string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if acct.password != body.Current {
		writeError(w, http.StatusUnauthorized, "current password is wrong")
		return
	}
	acct.password = body.Next
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) getCart(w http.ResponseWriter, r *http.Request) {
	acct := s.authed(w, r)
	if acct == nil {
		return
	}
	s.mu.Lock()
	lines := make([]cart.Line, len(acct.lines))
	copy(lines, acct.lines)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"cart": lines})
}

func (s *Server) addSingleProduct(w http.ResponseWriter, r *http.Request) {
	acct := s.authed(w, r)
	if acct == nil {
		return
	}
	var body cart.ItemRef
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if body.Quantity < 1 {
		writeError(w, http.StatusBadRequest, "quantity must be at least 1")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.addLineLocked(acct, body.ProductID, body.Quantity) {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// addLineLocked appends quantity units of the catalog product to the
// account's cart, folding into an existing line. Quantities add, never
// overwrite: the client's post-login merge depends on this.
func (s *Server) addLineLocked(acct *account, productID string, quantity int) bool {
	for i := range acct.lines {
		if acct.lines[i].Product.ID == productID {
			acct.lines[i].Quantity += quantity
			return true
		}
	}
	for _, p := range s.products {
		if p.ID == productID {
			acct.lines = append(acct.lines, cart.Line{Product: p, Quantity: quantity})
			return true
		}
	}
	return false
}

func (s *Server) removeSingleItem(w http.ResponseWriter, r *http.Request) {
	acct := s.authed(w, r)
	if acct == nil {
		return
	}
	id := r.PathValue("productId")

	s.mu.Lock()
	out := acct.lines[:0]
	for _, l := range acct.lines {
		if l.Product.ID != id {
			out = append(out, l)
		}
	}
	acct.lines = out
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) updateCart(w http.ResponseWriter, r *http.Request) {
	acct := s.authed(w, r)
	if acct == nil {
		return
	}
	id := r.PathValue("productId")
	quantity, err := strconv.Atoi(r.PathValue("quantity"))
	if err != nil || quantity < 1 {
		writeError(w, http.StatusBadRequest, "quantity must be a positive integer")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range acct.lines {
		if acct.lines[i].Product.ID == id {
			acct.lines[i].Quantity = quantity
			writeJSON(w, http.StatusOK, map[string]any{"success": true})
			return
		}
	}
	writeError(w, http.StatusNotFound, "item not in cart")
}

func (s *Server) addItemsInArray(w http.ResponseWriter, r *http.Request) {
	acct := s.authed(w, r)
	if acct == nil {
		return
	}
	var items []cart.ItemRef
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range items {
		if it.Quantity < 1 {
			continue
		}
		s.addLineLocked(acct, it.ProductID, it.Quantity)
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) clearCart(w http.ResponseWriter, r *http.Request) {
	acct := s.authed(w, r)
	if acct == nil {
		return
	}
	s.mu.Lock()
	acct.lines = nil
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
