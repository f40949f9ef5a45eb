package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ritikapurwa08/free-knowledge/internals/database"
	"github.com/ritikapurwa08/free-knowledge/internals/password"
	"github.com/ritikapurwa08/free-knowledge/internals/response"
	"github.com/ritikapurwa08/free-knowledge/internals/types"
	"github.com/ritikapurwa08/free-knowledge/internals/utils/cloudinary"
	"github.com/ritikapurwa08/free-knowledge/internals/utils/tokens"
)

// callerID reads the identity the auth middleware attached to the request.
// ok is false for anonymous callers on optional-auth routes.
func callerID(r *http.Request) (int64, bool) {
	userID, err := strconv.ParseInt(r.Header.Get("userID"), 10, 64)
	if err != nil {
		return 0, false
	}
	return userID, true
}

func New(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var user types.User

		err := json.NewDecoder(r.Body).Decode(&user)
		if err != nil {
			if errors.Is(err, io.EOF) {
				http.Error(w, fmt.Sprintf("no data to read: %v", err.Error()), http.StatusBadRequest)
			} else {
				http.Error(w, fmt.Sprintf("failed to decode JSON: %v", err.Error()), http.StatusBadRequest)
			}
			return
		}

		validate := validator.New(validator.WithRequiredStructEnabled())
		if err := validate.Struct(&user); err != nil {
			if _, ok := err.(*validator.InvalidValidationError); ok {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			response.ValidateResponse(w, err)
			return
		}

		hashpass, err := password.HashPassword(user.Password)
		if err != nil {
			http.Error(w, fmt.Sprintf("failed to encrypt the password : %v", err.Error()), http.StatusInternalServerError)
			return
		}
		user.Password = hashpass

		// new accounts start at zero; streak begins on first login
		user.TotalXp = 0
		user.Streak = 0

		if _, err := database.InsertNewUser(db, &user); err != nil {
			http.Error(w, fmt.Sprintf("Database error : %v", err), http.StatusInternalServerError)
			return
		}

		accessToken, refreshToken, err := tokens.GenerateTokens(&user)
		if err != nil {
			http.Error(w, fmt.Sprintf("Could not generate tokens : %v", err.Error()), http.StatusInternalServerError)
			return
		}

		tokenResponse := map[string]string{
			"access_token":  accessToken,
			"refresh_token": refreshToken,
			"username":      user.Username,
		}
		response.WriteResponse(w, response.CreateResponse(tokenResponse, http.StatusCreated, "User created Successfully"))
	}
}

func Login(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var loginData struct {
			Identifier string `json:"identifier" validate:"required"`
			Password   string `json:"password" validate:"required"`
		}

		if err := json.NewDecoder(r.Body).Decode(&loginData); err != nil {
			http.Error(w, "Invalid request payload", http.StatusBadRequest)
			return
		}

		validate := validator.New()
		if err := validate.Struct(loginData); err != nil {
			response.ValidateResponse(w, err)
			return
		}

		user, err := database.RetrieveUser(db, loginData.Identifier)
		if err != nil {
			http.Error(w, "user not found : Invalid credentials", http.StatusUnauthorized)
			return
		}

		isPasswordValid, _ := password.CheckPassword(loginData.Password, user.Password)
		if !isPasswordValid {
			http.Error(w, "user not found : Invalid credentials", http.StatusUnauthorized)
			return
		}

		now := time.Now()
		user.Streak = rollStreak(user.LastLogin, now, user.Streak)
		if err := database.UpdateLoginStreak(db, user.Id, user.Streak, now); err != nil {
			http.Error(w, fmt.Sprintf("Database error : %v", err), http.StatusInternalServerError)
			return
		}

		accessToken, refreshToken, err := tokens.GenerateTokens(user)
		if err != nil {
			http.Error(w, fmt.Sprintf("Could not generate tokens : %v", err.Error()), http.StatusInternalServerError)
			return
		}

		tokenResponse := map[string]string{
			"access_token":  accessToken,
			"refresh_token": refreshToken,
			"username":      user.Username,
		}
		response.WriteResponse(w, response.CreateResponse(tokenResponse, http.StatusOK, "Logged in successfully"))
	}
}

// rollStreak advances the daily login streak: same calendar day keeps it, a
// login on the next day extends it, anything longer resets to 1.
func rollStreak(lastLogin, now time.Time, current int) int {
	lastDay := lastLogin.Truncate(24 * time.Hour)
	today := now.Truncate(24 * time.Hour)

	switch today.Sub(lastDay) {
	case 0:
		if current == 0 {
			return 1
		}
		return current
	case 24 * time.Hour:
		return current + 1
	default:
		return 1
	}
}

func Me(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(r)
		if !ok {
			http.Error(w, "Not authenticated", http.StatusUnauthorized)
			return
		}

		user, err := database.RetrieveUser(db, userID)
		if err != nil {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}

		user.Password = ""
		response.WriteResponse(w, response.CreateResponse(user, http.StatusOK, "User retrieved successfully"))
	}
}

// UpdateProfile patches name/bio/image and handles the self-service admin
// toggle: turning admin ON requires the caller's email to be on the
// allow-list; turning it OFF is always permitted.
func UpdateProfile(db *sql.DB, defaultAdminEmails []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(r)
		if !ok {
			http.Error(w, "Not authenticated", http.StatusUnauthorized)
			return
		}

		var req types.UserUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request payload", http.StatusBadRequest)
			return
		}

		if req.Username != nil {
			if err := database.UpdateUsername(db, userID, *req.Username); err != nil {
				http.Error(w, fmt.Sprintf("Database error : %v", err), http.StatusInternalServerError)
				return
			}
		}
		if req.Bio != nil {
			if err := database.UpdateUserBio(db, userID, *req.Bio); err != nil {
				http.Error(w, fmt.Sprintf("Database error : %v", err), http.StatusInternalServerError)
				return
			}
		}
		if req.ImageUrl != nil {
			if err := database.UpdateUserImage(db, userID, *req.ImageUrl); err != nil {
				http.Error(w, fmt.Sprintf("Database error : %v", err), http.StatusInternalServerError)
				return
			}
		}

		if req.IsAdmin != nil {
			if *req.IsAdmin {
				user, err := database.RetrieveUser(db, userID)
				if err != nil {
					http.Error(w, "user not found", http.StatusNotFound)
					return
				}
				allowed, err := isAllowedAdminEmail(db, user.Email, defaultAdminEmails)
				if err != nil {
					http.Error(w, fmt.Sprintf("Database error : %v", err), http.StatusInternalServerError)
					return
				}
				if !allowed {
					http.Error(w, "Your email is not on the admin allow-list", http.StatusForbidden)
					return
				}
				if err := database.SetAdmin(db, userID, true); err != nil {
					http.Error(w, fmt.Sprintf("Database error : %v", err), http.StatusInternalServerError)
					return
				}
			} else {
				// self-demotion is always allowed
				if err := database.SetAdmin(db, userID, false); err != nil {
					http.Error(w, fmt.Sprintf("Database error : %v", err), http.StatusInternalServerError)
					return
				}
			}
		}

		response.WriteResponse(w, response.CreateResponse(nil, http.StatusOK, "Profile updated successfully"))
	}
}

func UpdateProfilePic(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(r)
		if !ok {
			http.Error(w, "Not authenticated", http.StatusUnauthorized)
			return
		}

		var req struct {
			Image string `json:"image" validate:"required"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request payload", http.StatusBadRequest)
			return
		}
		if req.Image == "" {
			http.Error(w, "image is required", http.StatusBadRequest)
			return
		}

		cld, ctx, err := cloudinary.Credentials()
		if err != nil {
			http.Error(w, fmt.Sprintf("Cloudinary error : %v", err), http.StatusInternalServerError)
			return
		}

		url, err := cloudinary.UploadImage(cld, ctx, req.Image)
		if err != nil {
			http.Error(w, fmt.Sprintf("Upload failed : %v", err), http.StatusInternalServerError)
			return
		}

		if err := database.UpdateUserImage(db, userID, url); err != nil {
			http.Error(w, fmt.Sprintf("Database error : %v", err), http.StatusInternalServerError)
			return
		}

		response.WriteResponse(w, response.CreateResponse(map[string]string{"imageUrl": url}, http.StatusOK, "Profile picture updated"))
	}
}
