package middleware

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"madebread/backend/models"
)

// Define context keys
type contextKey string

const PrincipalIDKey contextKey = "principal_id"
const PrincipalEmailKey contextKey = "principal_email"

var firebaseAuth *auth.Client
var firestoreClient *firestore.Client

// devBypassPrincipal is the identity used when Firebase is not configured.
var devBypassPrincipal = models.Principal{ID: "dev-owner-1", Email: "owner@madebread.local"}

// InitializeFirebase initializes the Firebase Admin SDK: the Auth client for
// token verification and account creation, and the Firestore client for the
// cloud document store. Credentials come from the environment; with none
// present the app runs in development mode with auth checks disabled and the
// local store in place of Firestore.
func InitializeFirebase() error {
	log.Println("Starting Firebase initialization...")

	credentials, source := credentialsFromEnv()
	if credentials == nil {
		log.Println("No Firebase credentials found, running in development mode with auth checks disabled")
		return nil
	}
	log.Printf("Using Firebase credentials from %s", source)

	projectID := os.Getenv("FIREBASE_PROJECT_ID")
	if projectID == "" {
		projectID = "madebread-tracker"
	}

	opt := option.WithCredentialsJSON(credentials)
	config := &firebase.Config{ProjectID: projectID}

	app, err := firebase.NewApp(context.Background(), config, opt)
	if err != nil {
		return fmt.Errorf("error initializing Firebase app: %w", err)
	}

	firebaseAuth, err = app.Auth(context.Background())
	if err != nil {
		return fmt.Errorf("error getting Firebase Auth client: %w", err)
	}

	firestoreClient, err = app.Firestore(context.Background())
	if err != nil {
		return fmt.Errorf("error getting Firestore client: %w", err)
	}

	log.Println("Firebase Admin SDK initialized successfully")
	return nil
}

// credentialsFromEnv checks the supported credential environment variables
// in order of preference.
func credentialsFromEnv() ([]byte, string) {
	if v := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); v != "" {
		return []byte(v), "FIREBASE_SERVICE_ACCOUNT_JSON"
	}
	if v := os.Getenv("FIREBASE_SERVICE_ACCOUNT_BASE64"); v != "" {
		decoded, err := base64.StdEncoding.DecodeString(v)
		if err != nil {
			log.Printf("Error decoding base64 Firebase credentials: %v", err)
			return nil, ""
		}
		return decoded, "FIREBASE_SERVICE_ACCOUNT_BASE64"
	}
	if v := os.Getenv("FIREBASE_SERVICE_ACCOUNT"); v != "" {
		return []byte(v), "FIREBASE_SERVICE_ACCOUNT"
	}
	return nil, ""
}

// AuthClient returns the Firebase Auth client, or nil in development mode.
func AuthClient() *auth.Client {
	return firebaseAuth
}

// FirestoreClient returns the Firestore client, or nil in development mode.
func FirestoreClient() *firestore.Client {
	return firestoreClient
}

// AuthMiddleware verifies Firebase ID tokens from the Authorization header
// and puts the authenticated principal into the request context.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Skip auth for OPTIONS requests (CORS preflight)
		if r.Method == "OPTIONS" {
			next.ServeHTTP(w, r)
			return
		}

		// If Firebase auth is not initialized, skip token verification (dev mode)
		if firebaseAuth == nil {
			ctx := context.WithValue(r.Context(), PrincipalIDKey, devBypassPrincipal.ID)
			ctx = context.WithValue(ctx, PrincipalEmailKey, devBypassPrincipal.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		idToken := extractToken(r.Header.Get("Authorization"))
		if idToken == "" {
			http.Error(w, "Unauthorized: No token provided", http.StatusUnauthorized)
			return
		}

		token, err := verifyToken(r.Context(), idToken)
		if err != nil {
			log.Printf("Error verifying token: %v", err)
			http.Error(w, "Unauthorized: Invalid token", http.StatusUnauthorized)
			return
		}

		email, _ := token.Claims["email"].(string)
		ctx := context.WithValue(r.Context(), PrincipalIDKey, token.UID)
		ctx = context.WithValue(ctx, PrincipalEmailKey, email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractToken gets the token from the Authorization header
func extractToken(authHeader string) string {
	if authHeader == "" {
		return ""
	}

	parts := strings.Split(authHeader, "Bearer ")
	if len(parts) != 2 {
		return ""
	}

	return parts[1]
}

// verifyToken verifies the Firebase ID token
func verifyToken(ctx context.Context, idToken string) (*auth.Token, error) {
	if firebaseAuth == nil {
		return nil, errors.New("Firebase auth client not initialized")
	}

	token, err := firebaseAuth.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("error verifying ID token: %w", err)
	}

	return token, nil
}

// GetPrincipalFromContext retrieves the authenticated principal from the
// request context. An empty ID means the request was not authenticated.
func GetPrincipalFromContext(r *http.Request) models.Principal {
	id, _ := r.Context().Value(PrincipalIDKey).(string)
	email, _ := r.Context().Value(PrincipalEmailKey).(string)
	return models.Principal{ID: id, Email: email}
}
