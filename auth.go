package main

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"golang.org/x/crypto/argon2"
)

// Argon2id parameters, per OWASP recommendations.
const (
	argonMemory      = 64 * 1024
	argonIterations  = 3
	argonParallelism = 2
	argonSaltLength  = 16
	argonKeyLength   = 32
)

var validate = validator.New()

func hashPassword(password string) (string, error) {
	salt := make([]byte, argonSaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, argonIterations, argonMemory, argonParallelism, argonKeyLength)

	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonIterations, argonParallelism, b64Salt, b64Hash), nil
}

func comparePassword(password, encodedHash string) (bool, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return false, errors.New("invalid hash format")
	}

	var version, memory, iterations, parallelism int
	fmt.Sscanf(parts[2], "v=%d", &version)
	fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism)

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, err
	}

	decodedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, err
	}

	comparisonHash := argon2.IDKey([]byte(password), salt,
		uint32(iterations), uint32(memory), uint8(parallelism), uint32(len(decodedHash)))

	return subtle.ConstantTimeCompare(decodedHash, comparisonHash) == 1, nil
}

// participantClaims is the payload of issued auth tokens. The participant id
// rides in the registered Subject field.
type participantClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func createToken(cfg *Config, participant Participant) (string, error) {
	now := time.Now()

	claims := &participantClaims{
		Name:  participant.Name,
		Email: participant.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   participant.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.jwtLifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "hooptrivia",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(cfg.jwtSecret))
}

func validateToken(cfg *Config, tokenString string) (*participantClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &participantClaims{}, func(token *jwt.Token) (any, error) {
		return []byte(cfg.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*participantClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}

// protect wraps a handler, requiring a valid bearer token before it runs.
func protect(cfg *Config, next func(w http.ResponseWriter, r *http.Request, p httprouter.Params, claims *participantClaims)) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		tokenString := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if tokenString == "" {
			jsonError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		claims, err := validateToken(cfg, tokenString)
		if err != nil {
			jsonError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		next(w, r, p, claims)
	}
}

type signupRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type signinRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

func serveSignup(cfg *Config, reg *Registry, logger *slog.Logger) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var payload signupRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			jsonError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := validate.Struct(payload); err != nil {
			jsonError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		passwordHash, err := hashPassword(payload.Password)
		if err != nil {
			logger.Error("password hashing failed", "error", err)
			jsonError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		participant, err := reg.CreateParticipant(uuid.New().String(), payload.Name, payload.Email, passwordHash)
		if errors.Is(err, errUserExists) {
			jsonError(w, http.StatusBadRequest, "User already exists")
			return
		}
		if err != nil {
			logger.Error("participant create failed", "error", err)
			jsonError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		token, err := createToken(cfg, participant)
		if err != nil {
			logger.Error("token signing failed", "error", err)
			jsonError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		logger.Info("participant created", "participant", participant.ID)

		writeJSON(w, http.StatusCreated, tokenResponse{
			Message: "User created successfully",
			Token:   token,
		})
	}
}

func serveSignin(cfg *Config, reg *Registry, logger *slog.Logger) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var payload signinRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			jsonError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := validate.Struct(payload); err != nil {
			jsonError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		participant, err := reg.FindParticipantByEmail(payload.Email)
		if errors.Is(err, errInvalidCredentials) {
			jsonError(w, http.StatusBadRequest, "Incorrect Credentials")
			return
		}
		if err != nil {
			logger.Error("participant lookup failed", "error", err)
			jsonError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		match, err := comparePassword(payload.Password, participant.PasswordHash)
		if err != nil || !match {
			jsonError(w, http.StatusBadRequest, "Incorrect Credentials")
			return
		}

		token, err := createToken(cfg, participant)
		if err != nil {
			logger.Error("token signing failed", "error", err)
			jsonError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		writeJSON(w, http.StatusOK, tokenResponse{
			Message: "User signed in successfully",
			Token:   token,
		})
	}
}
