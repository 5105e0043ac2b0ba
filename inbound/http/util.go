package http

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"expo-booth/common/errs"
	"expo-booth/model"

	"github.com/go-playground/validator/v10"
)

func writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if data == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func writeErrorResponse(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}

	w.Header().Set("Content-Type", "application/json")

	var message string
	var data any
	switch typedErr := err.(type) {
	case *errs.HttpError:
		message = typedErr.Message
		data = typedErr.Data
		w.WriteHeader(typedErr.Code)
	case validator.ValidationErrors:
		message = "Validation failed"
		w.WriteHeader(http.StatusBadRequest)

		validationErrors := make(map[string]string)
		for _, fieldErr := range typedErr {
			fieldName := fieldErr.Field()
			validationErrors[fieldName] = fieldErr.Tag()
		}

		data = validationErrors
	case *errs.NotFoundError:
		message = typedErr.Error()
		w.WriteHeader(http.StatusNotFound)
	case *errs.ConflictError:
		message = typedErr.Error()
		w.WriteHeader(http.StatusConflict)
	case *errs.InvariantError:
		message = typedErr.Error()
		w.WriteHeader(http.StatusConflict)
	case *errs.UpstreamError:
		message = "Payment gateway unavailable"
		w.WriteHeader(http.StatusBadGateway)
	default:
		message = "Internal Server Error"
		w.WriteHeader(500)
	}

	errorResponse := model.ErrorResponse{Error: message, Data: data}
	if err := json.NewEncoder(w).Encode(errorResponse); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// clientIP takes the first X-Forwarded-For hop when present, otherwise
// the peer address without its port.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
