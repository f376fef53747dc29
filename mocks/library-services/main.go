// Mock library services for local development and e2e testing. One binary
// stands in for all four upstreams: users on :8081, books on :8082, and
// borrows+fines together on :8086, mirroring the real deployment where the
// borrow and fine services share a host.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"
)

const (
	defaultUsersPort   = "8081"
	defaultBooksPort   = "8082"
	defaultBorrowsPort = "8086"
	defaultLatencyMs   = "30"
)

var latencyMs = getEnvInt("LATENCY_MS", defaultLatencyMs)

type user struct {
	UserID int64  `json:"userId"`
	Name   string `json:"name"`
}

type book struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type borrow struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"userId"`
	BookID     int64      `json:"bookId"`
	BorrowDate time.Time  `json:"borrowDate"`
	DueDate    time.Time  `json:"dueDate"`
	ReturnDate *time.Time `json:"returnDate,omitempty"`
	Status     string     `json:"status"`
}

type fine struct {
	ID        int64     `json:"id"`
	BorrowID  int64     `json:"borrowId"`
	UserID    int64     `json:"userId"`
	Amount    float64   `json:"amount"`
	Reason    string    `json:"reason"`
	Paid      bool      `json:"paid"`
	CreatedAt time.Time `json:"createdAt"`
}

// store holds the simulated state. Seeded with a user and a book that are
// deliberately missing so the console's N/A fallback shows up in dev.
type store struct {
	mu      sync.Mutex
	users   []user
	books   []book
	borrows []borrow
	fines   []fine
	nextID  int64
}

func seed() *store {
	now := time.Now().UTC().Truncate(time.Second)
	return &store{
		users: []user{
			{UserID: 1, Name: "Alice Martin"},
			{UserID: 2, Name: "Budi Santoso"},
			{UserID: 3, Name: "Carla Reyes"},
		},
		books: []book{
			{ID: 1, Title: "Dune"},
			{ID: 2, Title: "Solaris"},
			{ID: 3, Title: "The Dispossessed"},
		},
		borrows: []borrow{
			{ID: 1, UserID: 1, BookID: 1, BorrowDate: now.AddDate(0, 0, -10), DueDate: now.AddDate(0, 0, 4), Status: "BORROWED"},
			{ID: 2, UserID: 2, BookID: 3, BorrowDate: now.AddDate(0, 0, -30), DueDate: now.AddDate(0, 0, -16), Status: "OVERDUE"},
			// dangling references: user 99 and book 99 do not exist
			{ID: 3, UserID: 99, BookID: 99, BorrowDate: now.AddDate(0, 0, -5), DueDate: now.AddDate(0, 0, 9), Status: "BORROWED"},
		},
		fines: []fine{
			{ID: 1, BorrowID: 2, UserID: 2, Amount: 15000, Reason: "LATE", CreatedAt: now.AddDate(0, 0, -2)},
			{ID: 2, BorrowID: 3, UserID: 99, Amount: 90000, Reason: "LOST", CreatedAt: now.AddDate(0, 0, -1)},
		},
		nextID: 100,
	}
}

func main() {
	s := seed()

	usersMux := http.NewServeMux()
	usersMux.HandleFunc("GET /users", s.handleListUsers)
	usersMux.HandleFunc("GET /health", handleHealth("users"))

	booksMux := http.NewServeMux()
	booksMux.HandleFunc("GET /books", s.handleListBooks)
	booksMux.HandleFunc("GET /health", handleHealth("books"))

	borrowsMux := http.NewServeMux()
	borrowsMux.HandleFunc("GET /borrows", s.handleListBorrows)
	borrowsMux.HandleFunc("PUT /borrows/{id}/return", s.handleReturnBorrow)
	borrowsMux.HandleFunc("DELETE /borrows/{id}", s.handleDeleteBorrow)
	borrowsMux.HandleFunc("GET /fines", s.handleListFines)
	borrowsMux.HandleFunc("POST /fines", s.handleCreateFine)
	borrowsMux.HandleFunc("PUT /fines/{id}", s.handleUpdateFine)
	borrowsMux.HandleFunc("PUT /fines/{id}/pay", s.handlePayFine)
	borrowsMux.HandleFunc("DELETE /fines/{id}", s.handleDeleteFine)
	borrowsMux.HandleFunc("GET /health", handleHealth("borrows-fines"))

	usersPort := getEnv("USERS_PORT", defaultUsersPort)
	booksPort := getEnv("BOOKS_PORT", defaultBooksPort)
	borrowsPort := getEnv("BORROWS_PORT", defaultBorrowsPort)

	go serve("users", usersPort, usersMux)
	go serve("books", booksPort, booksMux)
	serve("borrows+fines", borrowsPort, borrowsMux)
}

func serve(name, port string, mux *http.ServeMux) {
	log.Printf("mock %s service listening on :%s", name, port)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.Fatal(err)
	}
}

func handleHealth(service string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": service})
	}
}

func (s *store) handleListUsers(w http.ResponseWriter, _ *http.Request) {
	simulateLatency()
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.users)
}

func (s *store) handleListBooks(w http.ResponseWriter, _ *http.Request) {
	simulateLatency()
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.books)
}

func (s *store) handleListBorrows(w http.ResponseWriter, _ *http.Request) {
	simulateLatency()
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.borrows)
}

func (s *store) handleReturnBorrow(w http.ResponseWriter, r *http.Request) {
	simulateLatency()
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.borrows {
		if s.borrows[i].ID != id {
			continue
		}
		now := time.Now().UTC()
		s.borrows[i].Status = "RETURNED"
		s.borrows[i].ReturnDate = &now
		writeJSON(w, http.StatusOK, s.borrows[i])
		return
	}
	notFound(w, "borrow not found")
}

func (s *store) handleDeleteBorrow(w http.ResponseWriter, r *http.Request) {
	simulateLatency()
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.borrows {
		if s.borrows[i].ID == id {
			s.borrows = append(s.borrows[:i], s.borrows[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
			return
		}
	}
	notFound(w, "borrow not found")
}

func (s *store) handleListFines(w http.ResponseWriter, _ *http.Request) {
	simulateLatency()
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.fines)
}

func (s *store) handleCreateFine(w http.ResponseWriter, r *http.Request) {
	simulateLatency()
	var in struct {
		BorrowID int64   `json:"borrowId"`
		UserID   int64   `json:"userId"`
		Amount   float64 `json:"amount"`
		Reason   string  `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		badRequest(w, "invalid body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	f := fine{
		ID: s.nextID, BorrowID: in.BorrowID, UserID: in.UserID,
		Amount: in.Amount, Reason: in.Reason, CreatedAt: time.Now().UTC(),
	}
	s.nextID++
	s.fines = append(s.fines, f)
	writeJSON(w, http.StatusCreated, f)
}

func (s *store) handleUpdateFine(w http.ResponseWriter, r *http.Request) {
	simulateLatency()
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in struct {
		Amount float64 `json:"amount"`
		Reason string  `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		badRequest(w, "invalid body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.fines {
		if s.fines[i].ID == id {
			s.fines[i].Amount = in.Amount
			s.fines[i].Reason = in.Reason
			writeJSON(w, http.StatusOK, s.fines[i])
			return
		}
	}
	notFound(w, "fine not found")
}

func (s *store) handlePayFine(w http.ResponseWriter, r *http.Request) {
	simulateLatency()
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.fines {
		if s.fines[i].ID == id {
			s.fines[i].Paid = true
			writeJSON(w, http.StatusOK, s.fines[i])
			return
		}
	}
	notFound(w, "fine not found")
}

func (s *store) handleDeleteFine(w http.ResponseWriter, r *http.Request) {
	simulateLatency()
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.fines {
		if s.fines[i].ID == id {
			s.fines = append(s.fines[:i], s.fines[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
			return
		}
	}
	notFound(w, "fine not found")
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(w, "id must be a positive integer")
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

func notFound(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusNotFound, map[string]string{"error": msg})
}

func simulateLatency() {
	if latencyMs > 0 {
		time.Sleep(time.Duration(latencyMs) * time.Millisecond)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key, fallback string) int {
	n, err := strconv.Atoi(getEnv(key, fallback))
	if err != nil {
		return 0
	}
	return n
}
