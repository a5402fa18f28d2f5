// ABOUTME: Page endpoints: home, sign-in, notices, and document submission
// ABOUTME: Guarded pages pull the identity from the request context

package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/2389/paperdesk/internal/auth"
	"github.com/2389/paperdesk/internal/leave"
	"github.com/2389/paperdesk/internal/pagecopy"
	"github.com/2389/paperdesk/internal/store"
)

// formDateLayout is the wire format of the HTML date inputs.
const formDateLayout = "2006-01-02"

// handleIndex renders the home page, personalized for the signed-in
// employee.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	identity := auth.IdentityFromContext(r.Context())

	employee, err := s.store.FindByUsername(r.Context(), identity.Username)
	if err != nil {
		s.logger.Error("loading employee for index", "error", err)
		http.Error(w, "service unavailable", http.StatusBadGateway)
		return
	}

	s.renderPage(w, http.StatusOK, "index.html", indexData{
		Title:     s.copy.Get(r.Context(), pagecopy.PageIndex, pagecopy.FieldTitle),
		FirstName: employee.FirstName,
		ThirdName: employee.ThirdName,
	})
}

// handleAuthPage renders the sign-in form.
func (s *Server) handleAuthPage(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, "login.html", loginData{
		Title: s.copy.Get(r.Context(), pagecopy.PageAuth, pagecopy.FieldTitle),
	})
}

// handleAuthSuccessPage renders the post-login notice.
func (s *Server) handleAuthSuccessPage(w http.ResponseWriter, r *http.Request) {
	s.renderNotice(w, r, pagecopy.PageAuthSuccess)
}

// handleSubmitDocs routes the blank selector. Only the day-off blank has
// a form today; the other document kinds are acknowledged stubs.
func (s *Server) handleSubmitDocs(w http.ResponseWriter, r *http.Request) {
	identity := auth.IdentityFromContext(r.Context())

	switch blank := r.PostFormValue("blank_name"); blank {
	case "free_day_blank":
		requests, err := s.leave.History(r.Context(), identity.Username)
		if err != nil {
			s.logger.Error("loading leave history", "error", err)
			http.Error(w, "service unavailable", http.StatusBadGateway)
			return
		}
		s.renderPage(w, http.StatusOK, "leave_form.html", leaveFormData{
			Title:    s.copy.Get(r.Context(), pagecopy.PageSubmitLeave, pagecopy.FieldTitle),
			Requests: requests,
		})
	case "fireness_blank":
		s.writeStub(w, "resignation letters are not accepted online yet")
	case "payement_blank":
		s.writeStub(w, "payment requests are not accepted online yet")
	case "vacation_blank":
		s.writeStub(w, "vacation requests are not accepted online yet")
	default:
		s.renderError404(w)
	}
}

func (s *Server) writeStub(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// handleSubmitLeave stores a day-off request for the signed-in employee
// and kicks off the confirmation mail. Empty dates land on the
// incomplete-form notice rather than an error status, matching the
// paper-form workflow the clerks are used to.
func (s *Server) handleSubmitLeave(w http.ResponseWriter, r *http.Request) {
	identity := auth.IdentityFromContext(r.Context())

	shiftWorked := parseFormDate(r.PostFormValue("shift_worked"))
	dayOff := parseFormDate(r.PostFormValue("day_off"))

	_, err := s.leave.Submit(r.Context(), identity.Username, shiftWorked, dayOff)
	if err != nil {
		switch {
		case errors.Is(err, leave.ErrEmptyDates):
			s.renderNotice(w, r, pagecopy.PageEmptyDataError)
		case errors.Is(err, store.ErrNotFound):
			s.renderError404(w)
		default:
			s.logger.Error("leave submission failed", "error", err)
			http.Error(w, "service unavailable", http.StatusBadGateway)
		}
		return
	}

	s.renderNotice(w, r, pagecopy.PageSubmitSuccess)
}

// parseFormDate parses an HTML date input; empty or invalid values come
// back zero and fail validation downstream.
func parseFormDate(value string) time.Time {
	t, err := time.Parse(formDateLayout, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
