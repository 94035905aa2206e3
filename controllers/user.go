package controllers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"ranking-uni/models"
	"ranking-uni/utils"

	"github.com/sirupsen/logrus"
)

type Controller struct{}

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

func (c Controller) Signup(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var user models.User
		if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid request body"})
			return
		}

		if user.Email == "" || user.Password == "" {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Email and password are required"})
			return
		}

		var exists bool
		err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)", user.Email).Scan(&exists)
		if err != nil {
			logrus.WithError(err).Error("failed to check existing user")
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Error checking existing user"})
			return
		}
		if exists {
			utils.RespondWithError(w, http.StatusConflict, models.Error{Message: "User already exists"})
			return
		}

		hashed, err := utils.HashPassword(user.Password)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to hash password"})
			return
		}

		result, err := db.Exec(
			"INSERT INTO users (email, password, first_name, last_name) VALUES (?, ?, ?, ?)",
			user.Email, hashed, user.FirstName, user.LastName,
		)
		if err != nil {
			logrus.WithError(err).Error("failed to insert user")
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to create user"})
			return
		}

		userID, _ := result.LastInsertId()
		w.WriteHeader(http.StatusCreated)
		utils.ResponseJSON(w, map[string]interface{}{
			"message": "User created successfully",
			"user_id": userID,
		})
	}
}

func (c Controller) Login(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var credentials models.User
		if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid request body"})
			return
		}

		if credentials.Email == "" || credentials.Password == "" {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Email and password are required"})
			return
		}

		var user models.User
		var hashed string
		err := db.QueryRow(
			"SELECT id, email, password FROM users WHERE email = ?", credentials.Email,
		).Scan(&user.ID, &user.Email, &hashed)
		if err == sql.ErrNoRows {
			utils.RespondWithError(w, http.StatusUnauthorized, models.Error{Message: "Invalid email or password"})
			return
		}
		if err != nil {
			logrus.WithError(err).Error("failed to look up user")
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Error looking up user"})
			return
		}

		if !utils.ComparePasswords(hashed, []byte(credentials.Password)) {
			utils.RespondWithError(w, http.StatusUnauthorized, models.Error{Message: "Invalid email or password"})
			return
		}

		accessToken, err := utils.GenerateAccessToken(user, accessTokenTTL)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to generate access token"})
			return
		}
		refreshToken, err := utils.GenerateRefreshToken(user, refreshTokenTTL)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to generate refresh token"})
			return
		}

		SetSessionCookies(w, accessToken, refreshToken)
		utils.ResponseJSON(w, map[string]string{
			"access_token":  accessToken,
			"refresh_token": refreshToken,
		})
	}
}

// RefreshToken mints a new credential pair from a valid refresh cookie.
func (c Controller) RefreshToken(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		refresh, err := r.Cookie(refreshCookieName)
		if err != nil || refresh.Value == "" {
			utils.RespondWithError(w, http.StatusUnauthorized, models.Error{Message: "Refresh token missing"})
			return
		}

		userID, err := utils.ParseUserID(refresh.Value)
		if err != nil {
			ClearSessionCookies(w)
			utils.RespondWithError(w, http.StatusUnauthorized, models.Error{Message: "Invalid refresh token"})
			return
		}

		var user models.User
		err = db.QueryRow("SELECT id, email FROM users WHERE id = ?", userID).Scan(&user.ID, &user.Email)
		if err != nil {
			ClearSessionCookies(w)
			utils.RespondWithError(w, http.StatusUnauthorized, models.Error{Message: "User not found"})
			return
		}

		accessToken, err := utils.GenerateAccessToken(user, accessTokenTTL)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to generate access token"})
			return
		}
		refreshToken, err := utils.GenerateRefreshToken(user, refreshTokenTTL)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to generate refresh token"})
			return
		}

		SetSessionCookies(w, accessToken, refreshToken)
		utils.ResponseJSON(w, map[string]string{
			"access_token":  accessToken,
			"refresh_token": refreshToken,
		})
	}
}
