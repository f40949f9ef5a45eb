package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/ritikapurwa08/free-knowledge/internals/database"
	"github.com/ritikapurwa08/free-knowledge/internals/response"
	"github.com/ritikapurwa08/free-knowledge/internals/types"
	"github.com/ritikapurwa08/free-knowledge/internals/utils/tokens"
)

// InitializeFirebaseApp sets up the Firebase Admin SDK used to verify Google
// sign-in tokens. The service account JSON comes from the environment.
func InitializeFirebaseApp() *auth.Client {
	serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT")
	if serviceAccountJSON == "" {
		log.Fatal("FIREBASE_SERVICE_ACCOUNT environment variable not set")
	}

	sa := option.WithCredentialsJSON([]byte(serviceAccountJSON))
	app, err := firebase.NewApp(context.Background(), nil, sa)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase App: %v", err)
	}

	client, err := app.Auth(context.Background())
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth client: %v", err)
	}

	log.Println("Firebase App initialized successfully")
	return client
}

// HandleFirebaseAuth signs a user in (or up) with a verified Google identity.
func HandleFirebaseAuth(db *sql.DB, client *auth.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		idToken := r.Header.Get("Authorization")
		if idToken == "" || !strings.HasPrefix(idToken, "Bearer ") {
			http.Error(w, "Missing or invalid Authorization token", http.StatusUnauthorized)
			return
		}
		idToken = strings.TrimPrefix(idToken, "Bearer ")

		token, err := client.VerifyIDToken(ctx, idToken)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid ID token: %v", err), http.StatusUnauthorized)
			return
		}

		var requestData struct {
			Username   string `json:"username"`
			Email      string `json:"email"`
			FirebaseId string `json:"firebaseId"`
			ImageUrl   string `json:"imageUrl"`
			IsNewUser  bool   `json:"isNewUser"`
		}
		if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		log.Printf("Authenticated Firebase user: %s", token.UID)

		var user *types.User
		if requestData.IsNewUser {
			user = &types.User{
				Username: requestData.Username,
				Email:    requestData.Email,
				Password: requestData.FirebaseId,
				ImageUrl: requestData.ImageUrl,
			}
			id, err := database.InsertNewUser(db, user)
			if err != nil {
				http.Error(w, fmt.Sprintf("Database error: %v", err), http.StatusInternalServerError)
				return
			}
			user.Id = id
		} else {
			user, err = database.RetrieveUser(db, requestData.Email)
			if err != nil {
				log.Printf("Error retrieving user: %v", err)
				http.Error(w, "No user found", http.StatusUnauthorized)
				return
			}
		}

		accessToken, refreshToken, err := tokens.GenerateTokens(user)
		if err != nil {
			http.Error(w, fmt.Sprintf("Could not generate tokens: %v", err), http.StatusInternalServerError)
			return
		}

		responseData := struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
			Username     string `json:"username"`
		}{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			Username:     user.Username,
		}
		response.WriteResponse(w, response.CreateResponse(responseData, http.StatusOK, "Logged in successfully"))
	}
}
