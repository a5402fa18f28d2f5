// ABOUTME: Employee record endpoints: registration, listing, update, delete
// ABOUTME: Passwords are hashed at the boundary; stored hashes never leave it

package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/2389/paperdesk/internal/auth"
	"github.com/2389/paperdesk/internal/store"
)

// maxListLimit caps the page size of employee listings.
const maxListLimit = 100

// employeePublic is the listing projection: everything except the
// credentials.
type employeePublic struct {
	ID            int64  `json:"id"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phone_number"`
	Department    string `json:"dep"`
	SubDepartment string `json:"sub_dep"`
	FirstName     string `json:"first_name"`
	SecondName    string `json:"second_name"`
	ThirdName     string `json:"third_name"`
	Position      string `json:"position"`
	TabNumber     int    `json:"tab_no"`
	RegisteredOn  string `json:"registered_on"`
	IsAdmin       bool   `json:"is_admin"`
	Competence    string `json:"competence"`
}

func publicView(e *store.Employee) employeePublic {
	return employeePublic{
		ID:            e.ID,
		Email:         e.Email,
		PhoneNumber:   e.PhoneNumber,
		Department:    e.Department,
		SubDepartment: e.SubDepartment,
		FirstName:     e.FirstName,
		SecondName:    e.SecondName,
		ThirdName:     e.ThirdName,
		Position:      e.Position,
		TabNumber:     e.TabNumber,
		RegisteredOn:  e.RegisteredOn.Format(time.DateOnly),
		IsAdmin:       e.IsAdmin,
		Competence:    e.Competence,
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response", "error", err)
	}
}

// handleCreateEmployee registers a new employee from form data. The
// plaintext password is hashed here and discarded.
func (s *Server) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid form data"})
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "username and password are required"})
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		s.logger.Error("hashing password", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	tabNo, _ := strconv.Atoi(r.PostFormValue("tab_no"))
	e := &store.Employee{
		Username:       username,
		HashedPassword: hash,
		Email:          r.PostFormValue("email"),
		PhoneNumber:    r.PostFormValue("phone_number"),
		Department:     r.PostFormValue("dep"),
		SubDepartment:  r.PostFormValue("sub_dep"),
		FirstName:      r.PostFormValue("first_name"),
		SecondName:     r.PostFormValue("second_name"),
		ThirdName:      r.PostFormValue("third_name"),
		Position:       r.PostFormValue("position"),
		TabNumber:      tabNo,
		RegisteredOn:   time.Now().UTC(),
		Competence:     r.PostFormValue("competence"),
	}

	if err := s.store.CreateEmployee(r.Context(), e); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			s.writeJSON(w, http.StatusConflict, map[string]string{
				"message": "Oops, the data you wrote refers to an existing user. Try again",
			})
			return
		}
		s.logger.Error("creating employee", "error", err)
		http.Error(w, "service unavailable", http.StatusBadGateway)
		return
	}

	s.writeJSON(w, http.StatusCreated, map[string]string{"message": "user is created"})
}

// handleListEmployees returns the public projection with offset/limit
// paging.
func (s *Server) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}
	limit := maxListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > maxListLimit {
			s.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "limit must be between 1 and 100"})
			return
		}
		limit = parsed
	}

	employees, err := s.store.ListEmployees(r.Context(), offset, limit)
	if err != nil {
		s.logger.Error("listing employees", "error", err)
		http.Error(w, "service unavailable", http.StatusBadGateway)
		return
	}

	views := make([]employeePublic, 0, len(employees))
	for _, e := range employees {
		views = append(views, publicView(e))
	}
	s.writeJSON(w, http.StatusOK, views)
}

// optionalField returns a pointer to the form value when the field was
// submitted at all, nil otherwise. PATCH semantics: absent means keep.
func optionalField(r *http.Request, name string) *string {
	if !r.PostForm.Has(name) {
		return nil
	}
	v := r.PostFormValue(name)
	return &v
}

// handleUpdateEmployee applies a partial update. A submitted password is
// re-hashed before it reaches the store.
func (s *Server) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid id"})
		return
	}

	if err := r.ParseForm(); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid form data"})
		return
	}

	upd := store.EmployeeUpdate{
		Username:      optionalField(r, "username"),
		Email:         optionalField(r, "email"),
		PhoneNumber:   optionalField(r, "phone_number"),
		Department:    optionalField(r, "dep"),
		SubDepartment: optionalField(r, "sub_dep"),
		FirstName:     optionalField(r, "first_name"),
		SecondName:    optionalField(r, "second_name"),
		ThirdName:     optionalField(r, "third_name"),
		Position:      optionalField(r, "position"),
		Competence:    optionalField(r, "competence"),
	}
	if raw := optionalField(r, "tab_no"); raw != nil {
		tabNo, err := strconv.Atoi(*raw)
		if err != nil {
			s.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid tab_no"})
			return
		}
		upd.TabNumber = &tabNo
	}
	if password := optionalField(r, "password"); password != nil {
		hash, err := auth.HashPassword(*password)
		if err != nil {
			s.logger.Error("hashing password", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		upd.HashedPassword = &hash
	}

	updated, err := s.store.UpdateEmployee(r.Context(), id, upd)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			s.writeJSON(w, http.StatusNotFound, map[string]string{"message": "Oops.. User not found"})
		case errors.Is(err, store.ErrDuplicate):
			s.writeJSON(w, http.StatusConflict, map[string]string{
				"message": "Oops, the data you wrote refers to an existing user. Try again",
			})
		default:
			s.logger.Error("updating employee", "error", err)
			http.Error(w, "service unavailable", http.StatusBadGateway)
		}
		return
	}

	s.writeJSON(w, http.StatusOK, publicView(updated))
}

// handleDeleteEmployee removes an employee record.
func (s *Server) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid id"})
		return
	}

	if err := s.store.DeleteEmployee(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.writeJSON(w, http.StatusNotFound, map[string]string{"message": "Oops.. User not found"})
			return
		}
		s.logger.Error("deleting employee", "error", err)
		http.Error(w, "service unavailable", http.StatusBadGateway)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
