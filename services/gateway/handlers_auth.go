package gateway

import (
	"errors"
	"net/http"
	"strings"

	"launchpad/pkg/mulearn"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (g *Gateway) handleLoginCompany(w http.ResponseWriter, r *http.Request) {
	g.login(w, r, mulearn.UserTypeCompany)
}

func (g *Gateway) handleLoginRecruiter(w http.ResponseWriter, r *http.Request) {
	g.login(w, r, mulearn.UserTypeRecruiter)
}

func (g *Gateway) login(w http.ResponseWriter, r *http.Request, userType mulearn.UserType) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, errors.New("email and password are required"))
		return
	}

	var tokens mulearn.Tokens
	var err error
	if userType == mulearn.UserTypeCompany {
		tokens, err = g.upstream.LoginCompany(r.Context(), req.Email, req.Password)
	} else {
		tokens, err = g.upstream.LoginRecruiter(r.Context(), req.Email, req.Password)
	}
	if err != nil {
		respondActionError(w, err)
		return
	}

	session, err := g.sessions.Create(r.Context(), userType, tokens)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"session_token": session.ID.String(),
		"user_id":       session.UserID,
		"user_type":     session.UserType,
		"expires_at":    session.ExpiresAt,
	})
}

func (g *Gateway) handleLogout(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, errors.New("no session"))
		return
	}

	if err := g.sessions.Delete(r.Context(), session.ID); err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	g.ledgers.drop(session.ID)

	respondJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (g *Gateway) handleRegisterCompany(w http.ResponseWriter, r *http.Request) {
	var req mulearn.CompanySignup
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if req.Name == "" || req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, errors.New("name, username, and password are required"))
		return
	}

	if err := g.upstream.RegisterCompany(r.Context(), req); err != nil {
		respondActionError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"ok": true})
}

func (g *Gateway) handleRegisterRecruiter(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFromContext(r.Context())
	if session.UserType != mulearn.UserTypeCompany {
		respondError(w, http.StatusForbidden, errors.New("only company accounts can register recruiters"))
		return
	}

	var req mulearn.RecruiterSignup
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if req.CompanyID == "" {
		req.CompanyID = session.UserID
	}

	if err := g.upstream.RegisterRecruiter(r.Context(), session.AccessToken, req); err != nil {
		respondActionError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"ok": true})
}

func (g *Gateway) handleProfile(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFromContext(r.Context())

	switch session.UserType {
	case mulearn.UserTypeCompany:
		company, err := g.upstream.CompanyInfo(r.Context(), session.AccessToken, session.UserID)
		if err != nil {
			respondActionError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"user_type": session.UserType, "company": company})
	case mulearn.UserTypeRecruiter:
		recruiter, err := g.upstream.RecruiterInfo(r.Context(), session.AccessToken, session.UserID)
		if err != nil {
			respondActionError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"user_type": session.UserType, "recruiter": recruiter})
	default:
		respondError(w, http.StatusInternalServerError, errors.New("unknown user type"))
	}
}

type resetRequest struct {
	Email           string `json:"email,omitempty"`
	Token           string `json:"token,omitempty"`
	UserType        string `json:"user_type"`
	NewPassword     string `json:"new_password,omitempty"`
	ConfirmPassword string `json:"confirm_password,omitempty"`
}

func parseUserType(raw string) (mulearn.UserType, error) {
	switch mulearn.UserType(raw) {
	case mulearn.UserTypeCompany:
		return mulearn.UserTypeCompany, nil
	case mulearn.UserTypeRecruiter:
		return mulearn.UserTypeRecruiter, nil
	default:
		return "", errors.New("user_type must be company or recruiter")
	}
}

func (g *Gateway) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	userType, err := parseUserType(req.UserType)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if req.Email == "" {
		respondError(w, http.StatusBadRequest, errors.New("email is required"))
		return
	}

	if err := g.upstream.ForgotPassword(r.Context(), req.Email, userType); err != nil {
		respondActionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (g *Gateway) handleVerifyResetToken(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	userType, err := parseUserType(req.UserType)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if req.Token == "" {
		respondError(w, http.StatusBadRequest, errors.New("token is required"))
		return
	}

	if err := g.upstream.VerifyResetToken(r.Context(), req.Token, userType); err != nil {
		respondActionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (g *Gateway) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	userType, err := parseUserType(req.UserType)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if req.Token == "" || req.NewPassword == "" {
		respondError(w, http.StatusBadRequest, errors.New("token and new_password are required"))
		return
	}
	if req.NewPassword != req.ConfirmPassword {
		respondError(w, http.StatusBadRequest, errors.New("passwords do not match"))
		return
	}

	if err := g.upstream.ResetPassword(r.Context(), req.Token, userType, req.NewPassword, req.ConfirmPassword); err != nil {
		respondActionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"ok": true})
}
