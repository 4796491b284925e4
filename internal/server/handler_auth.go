package server

import (
	"net/http"
	"strings"
	"time"

	"hiremate/internal/auth"
	"hiremate/internal/types"

	"github.com/google/uuid"
)

// createSignupHandler builds the signup handler for the given role
func (s *Server) createSignupHandler(role types.UserRole) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SignupRequest
		if err := parseJSONRequest(r, &req); err != nil {
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if err := s.validate.Struct(req); err != nil {
			writeErrorResponse(w, "Invalid request", "name, a valid email and a password of at least 6 characters are required", http.StatusBadRequest)
			return
		}
		if role == types.RoleRecruiter && strings.TrimSpace(req.Company) == "" {
			writeErrorResponse(w, "Invalid request", "company is required for recruiter accounts", http.StatusBadRequest)
			return
		}

		hash, err := auth.HashPassword(req.Password, s.AppConfig.Auth.BcryptCost)
		if err != nil {
			s.writeAppError(w, err, "Signup failed")
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		var user any
		switch role {
		case types.RoleRecruiter:
			recruiter := &types.Recruiter{
				Name:         req.Name,
				Email:        email,
				PasswordHash: hash,
				Company:      req.Company,
			}
			if err := s.Store.CreateRecruiter(r.Context(), recruiter); err != nil {
				s.writeAppError(w, err, "Signup failed")
				return
			}
			user = recruiter
		default:
			seeker := &types.JobSeeker{
				Name:         req.Name,
				Email:        email,
				PasswordHash: hash,
			}
			if err := s.Store.CreateJobSeeker(r.Context(), seeker); err != nil {
				s.writeAppError(w, err, "Signup failed")
				return
			}
			user = seeker
		}

		s.Logger.Info("Account created",
			"role", string(role),
			"email", email)

		writeJSON(w, http.StatusCreated, user)
	}
}

// createSigninHandler builds the signin handler for the given role
func (s *Server) createSigninHandler(role types.UserRole) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SigninRequest
		if err := parseJSONRequest(r, &req); err != nil {
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if err := s.validate.Struct(req); err != nil {
			writeErrorResponse(w, "Invalid request", "a valid email and a password are required", http.StatusBadRequest)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		var userID uuid.UUID
		var hash string
		var user any

		switch role {
		case types.RoleRecruiter:
			recruiter, err := s.Store.GetRecruiterByEmail(r.Context(), email)
			if err != nil {
				s.rejectCredentials(w, email)
				return
			}
			userID, hash, user = recruiter.ID, recruiter.PasswordHash, recruiter
		default:
			seeker, err := s.Store.GetJobSeekerByEmail(r.Context(), email)
			if err != nil {
				s.rejectCredentials(w, email)
				return
			}
			userID, hash, user = seeker.ID, seeker.PasswordHash, seeker
		}

		if err := auth.CheckPassword(hash, req.Password); err != nil {
			s.rejectCredentials(w, email)
			return
		}

		token, err := s.Tokens.Issue(userID, role)
		if err != nil {
			s.writeAppError(w, err, "Signin failed")
			return
		}

		writeJSON(w, http.StatusOK, AuthResponse{Token: token, User: user})
	}
}

// rejectCredentials answers every credential failure identically so the
// response does not reveal whether the account exists
func (s *Server) rejectCredentials(w http.ResponseWriter, email string) {
	s.Logger.Info("Signin rejected", "email", email)
	writeErrorResponse(w, "Invalid credentials", "Invalid email or password", http.StatusUnauthorized)
}

// signoutHandler revokes the presented token's jti until its expiry
func (s *Server) signoutHandler(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeErrorResponse(w, "Missing token", "Authorization Bearer token required", http.StatusUnauthorized)
		return
	}

	claims, err := s.Tokens.Verify(r.Context(), token)
	if err != nil {
		writeErrorResponse(w, "Invalid token", "Invalid or expired token", http.StatusUnauthorized)
		return
	}

	if err := s.Tokens.Revoke(r.Context(), claims); err != nil {
		s.writeAppError(w, err, "Signout failed")
		return
	}

	s.Logger.Info("Token revoked",
		"jti", claims.ID,
		"role", string(claims.Role),
		"expires", claims.ExpiresAt.Format(time.RFC3339))

	w.WriteHeader(http.StatusNoContent)
}
